// Package view renders the ad form with gomponents. Components only
// receive values; all state lives in the form they are rendered from.
package view

import (
	"strconv"
	"unicode/utf8"

	"github.com/postad/postad-api/internal/catalog"
	. "maragu.dev/gomponents"
	"maragu.dev/gomponents/components"
	. "maragu.dev/gomponents/html"
)

// NotificationText is the banner shown after a successful post
const NotificationText = "Your ad has been posted successfully!"

// FieldProps frames one form control
type FieldProps struct {
	Label    string
	For      string
	Required bool
	Error    string
	// Value and Max drive the "n / max" counter; Max 0 hides it.
	Value string
	Max   int
}

// Field renders label, control, error text and character counter. Error
// and counter show independently of each other.
func Field(p FieldProps, control Node) Node {
	var meta []Node
	if p.Error != "" {
		meta = append(meta, Span(Class("field-error"), Attr("role", "alert"), Text(p.Error)))
	}
	if p.Max > 0 {
		meta = append(meta, Span(Class("field-count"),
			Textf("%d / %d", utf8.RuneCountInString(p.Value), p.Max)))
	}

	return Div(Class("field"),
		Label(
			If(p.For != "", For(p.For)),
			Text(p.Label),
			If(p.Required, Span(Class("required"), Text(" *"))),
		),
		control,
		If(len(meta) > 0, Div(Class("field-meta"), Group(meta))),
	)
}

// Choice renders options as exclusive radio items; at most one is selected
func Choice(name string, options []catalog.Option, selected string) Node {
	return Div(Class("choice"), Attr("role", "radiogroup"),
		Map(options, func(o catalog.Option) Node {
			id := name + "-" + o.Value
			checked := o.Value == selected
			return Label(
				components.Classes{"choice-item": true, "selected": checked},
				For(id),
				Input(Type("radio"), ID(id), Name(name), Value(o.Value), If(checked, Checked())),
				Text(o.Label),
			)
		}),
	)
}

// ImageSlotName is the file input name of slot i
func ImageSlotName(i int) string {
	return "image_" + strconv.Itoa(i)
}

// ImageGrid renders one tile per slot. Filled tiles show their image, the
// first one marked as cover; every tile offers a file input.
func ImageGrid(images []string) Node {
	tiles := make([]Node, len(images))
	for i, img := range images {
		tiles[i] = imageSlot(i, img)
	}

	return Div(
		Div(Class("image-grid"), Group(tiles)),
		P(Class("image-note"), Text("*This field is mandatory")),
	)
}

func imageSlot(i int, img string) Node {
	name := ImageSlotName(i)

	var content Node
	if img != "" {
		content = Group{
			Img(Src(img), Alt("Upload "+strconv.Itoa(i+1))),
			If(i == 0, Div(Class("cover"), Text("COVER"))),
		}
	} else {
		content = Label(For(name), Class("slot-empty"),
			Span(Class("camera"), Attr("aria-hidden", "true"), Text("📷")),
			If(i == 0, Span(Text("Add Photo"))),
		)
	}

	return Div(components.Classes{"image-slot": true, "filled": img != ""},
		content,
		Input(Type("file"), ID(name), Name(name), Attr("accept", "image/*")),
	)
}

// Notification renders the success banner
func Notification() Node {
	return Div(Class("notification"), Attr("role", "status"), Text(NotificationText))
}

func formSection(title string, children ...Node) Node {
	return Section(Class("form-section"),
		H2(Class("form-section-title"), Text(title)),
		Div(Class("form-section-body"), Group(children)),
	)
}

func selectOptions(placeholder string, values []string, selected string) Node {
	nodes := []Node{Option(Value(""), Text(placeholder))}
	for _, v := range values {
		nodes = append(nodes, Option(Value(v), If(v == selected, Selected()), Text(v)))
	}
	return Group(nodes)
}
