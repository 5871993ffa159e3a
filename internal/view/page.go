package view

import (
	"strconv"

	"github.com/postad/postad-api/internal/adform"
	"github.com/postad/postad-api/internal/catalog"
	. "maragu.dev/gomponents"
	"maragu.dev/gomponents/components"
	. "maragu.dev/gomponents/html"
)

// Form intents, carried by the submit buttons of the page
const (
	IntentUpdate     = "update"
	IntentSubmit     = "submit"
	IntentTabList    = "tab-list"
	IntentTabCurrent = "tab-current"
)

// ProfileImageName is the file input name of the profile avatar
const ProfileImageName = "profile_image"

// PageData is everything the post page renders from
type PageData struct {
	Action   string
	Form     adform.Snapshot
	Catalog  *catalog.Catalog
	Interval int // seconds the notification stays up
}

// Page renders the complete post-your-ad document
func Page(data PageData) Node {
	var head []Node
	if data.Form.NotificationVisible && data.Interval > 0 {
		// Reload once the notification is dismissed.
		head = append(head, Meta(Attr("http-equiv", "refresh"), Attr("content", strconv.Itoa(data.Interval))))
	}
	head = append(head, StyleEl(Raw(pageCSS)))

	return components.HTML5(components.HTML5Props{
		Title:    "Post your ad",
		Language: "en",
		Head:     head,
		Body: []Node{
			Main(Class("page"),
				H1(Text("POST YOUR AD")),
				If(data.Form.NotificationVisible, Notification()),
				adForm(data),
			),
		},
	})
}

func adForm(data PageData) Node {
	d := data.Form.Draft
	errs := data.Form.Errors
	cat := data.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	action := data.Action
	if action == "" {
		action = "/post"
	}

	return Form(Method("post"), Action(action), Attr("enctype", "multipart/form-data"), Class("ad-form"),
		// First submit button is the one Enter triggers.
		Button(Type("submit"), Name("intent"), Value(IntentUpdate), Class("hidden-default"), Attr("tabindex", "-1"), Text("Update")),

		formSection("SELECTED CATEGORY",
			P(Class("category"), Text(d.Category+" / "+d.Category)),
		),

		formSection("INCLUDE SOME DETAILS",
			Field(FieldProps{Label: "Brand", For: "brand", Required: true, Error: errs.Message(adform.FieldBrand)},
				Select(ID("brand"), Name("brand"),
					selectOptions("Select Brand", cat.BrandList(), d.Brand)),
			),
			Field(FieldProps{Label: "Model", For: "model", Required: true, Error: errs.Message(adform.FieldModel)},
				Select(ID("model"), Name("model"), If(d.Brand == "", Disabled()),
					selectOptions("Select Model", cat.ModelsFor(d.Brand), d.Model)),
			),
			Field(FieldProps{Label: "Variant", For: "variant", Required: true, Error: errs.Message(adform.FieldVariant)},
				Select(ID("variant"), Name("variant"), If(d.Model == "", Disabled()),
					selectOptions("Select Variant", cat.VariantsFor(d.Model), d.Variant)),
			),
			Button(Type("submit"), Name("intent"), Value(IntentUpdate), Class("refresh"), Text("Refresh options")),
			Field(FieldProps{Label: "Year", For: "year", Required: true, Error: errs.Message(adform.FieldYear)},
				Input(Type("number"), ID("year"), Name("year"), Value(d.Year), Placeholder("Enter year")),
			),
			Field(FieldProps{Label: "Fuel", Required: true, Error: errs.Message(adform.FieldFuel)},
				Choice("fuel", cat.Fuel, d.Fuel),
			),
			Field(FieldProps{Label: "Transmission", Required: true, Error: errs.Message(adform.FieldTransmission)},
				Choice("transmission", cat.Transmission, d.Transmission),
			),
			textInput(adform.FieldKmDriven, "KM driven", "Enter KM driven", d.KmDriven, errs, true),
			Field(FieldProps{Label: "No. of Owners", Required: true, Error: errs.Message(adform.FieldOwners)},
				Choice("owners", cat.Owners, d.Owners),
			),
			textInput(adform.FieldTitle, "Ad title", "Mention the key features of your item (e.g. brand, model, age, type)", d.Title, errs, true),
			Field(FieldProps{
				Label: "Description", For: "description", Required: true,
				Error: errs.Message(adform.FieldDescription),
				Value: d.Description, Max: adform.FieldDescription.MaxLength(),
			},
				Textarea(ID("description"), Name("description"), Attr("rows", "4"),
					Attr("maxlength", strconv.Itoa(adform.FieldDescription.MaxLength())),
					Placeholder("Include condition, features and reason for selling"),
					Text(d.Description)),
			),
		),

		formSection("SET A PRICE",
			Field(FieldProps{Label: "Price", For: "price", Required: true, Error: errs.Message(adform.FieldPrice)},
				Div(Class("price"),
					Span(Class("currency"), Text("₹")),
					Input(Type("number"), ID("price"), Name("price"), Value(d.Price), Placeholder("Enter price")),
				),
			),
		),

		formSection("UPLOAD UP TO 20 PHOTOS",
			ImageGrid(d.Images[:]),
			If(errs.Has(adform.FieldImages), P(Class("field-error"), Attr("role", "alert"), Text(errs.Message(adform.FieldImages)))),
		),

		formSection("CONFIRM YOUR LOCATION",
			locationTabs(data.Form.LocationTab),
			Field(FieldProps{Label: "Country", For: "country"},
				Input(Type("text"), ID("country"), Value(d.Country), Disabled()),
			),
			Field(FieldProps{Label: "Region", For: "region"},
				Select(ID("region"), Name("region"),
					selectOptions("Select Region", cat.RegionList(), d.Region)),
			),
			Field(FieldProps{Label: "City", For: "city", Required: true, Error: errs.Message(adform.FieldCity)},
				Select(ID("city"), Name("city"), If(d.Region == "", Disabled()),
					selectOptions("Select City", cat.CitiesFor(d.Region), d.City)),
			),
		),

		formSection("REVIEW YOUR DETAILS",
			profile(d),
			textInput(adform.FieldName, "Name", "", d.Name, errs, false),
			Field(FieldProps{Label: "Your phone number", For: "phone", Required: true, Error: errs.Message(adform.FieldPhone)},
				Input(Type("tel"), ID("phone"), Name("phone"), Value(d.Phone), Placeholder("+91XXXXXXXXXX")),
			),
		),

		Div(Class("actions"),
			Button(Type("submit"), Name("intent"), Value(IntentSubmit), Class("post"), Text("Post now")),
		),
	)
}

func textInput(f adform.Field, label, placeholder, value string, errs adform.Errors, required bool) Node {
	name := string(f)
	return Field(FieldProps{
		Label: label, For: name, Required: required,
		Error: errs.Message(f),
		Value: value, Max: f.MaxLength(),
	},
		Input(Type("text"), ID(name), Name(name), Value(value),
			If(placeholder != "", Placeholder(placeholder)),
			Attr("maxlength", strconv.Itoa(f.MaxLength()))),
	)
}

func locationTabs(active adform.LocationTab) Node {
	tab := func(t adform.LocationTab, intent, label string) Node {
		return Button(Type("submit"), Name("intent"), Value(intent),
			components.Classes{"tab": true, "active": active == t},
			Text(label))
	}
	return Div(Class("tabs"), Attr("role", "tablist"),
		tab(adform.TabList, IntentTabList, "LIST"),
		tab(adform.TabCurrent, IntentTabCurrent, "CURRENT LOCATION"),
	)
}

func profile(d adform.Draft) Node {
	var avatar Node
	if d.ProfileImage != "" {
		avatar = Img(Src(d.ProfileImage), Alt("Profile"))
	} else {
		avatar = Span(Class("avatar-placeholder"), Attr("aria-hidden", "true"), Text("👤"))
	}
	return Div(Class("profile"),
		Label(For(ProfileImageName), Class("avatar"), avatar, Span(Class("camera"), Text("📷"))),
		Input(Type("file"), ID(ProfileImageName), Name(ProfileImageName), Attr("accept", "image/*")),
	)
}

const pageCSS = `
body{font-family:sans-serif;margin:0;background:#f2f4f5;color:#002f34}
.page{max-width:860px;margin:0 auto;padding:16px}
h1{text-align:center;font-size:22px}
.ad-form{background:#fff;border:1px solid #ccd5d6;border-radius:4px}
.form-section{border-bottom:1px solid #ccd5d6;padding:16px 24px}
.form-section-title{font-size:16px}
.field{margin:12px 0;max-width:420px}
.field label{display:block;font-size:13px;margin-bottom:4px}
.field input,.field select,.field textarea{width:100%;padding:8px;box-sizing:border-box}
.field-meta{display:flex;justify-content:space-between;font-size:12px}
.field-error{color:#d32f2f}
.field-count{margin-left:auto;color:#406367}
.choice{display:flex;flex-wrap:wrap;gap:8px}
.choice-item{border:1px solid #406367;border-radius:4px;padding:6px 12px;cursor:pointer}
.choice-item input{display:none}
.choice-item.selected{background:#c8f8f6;border-color:#23e5db}
.price{display:flex;align-items:center;gap:6px}
.image-grid{display:grid;grid-template-columns:repeat(5,90px);gap:8px}
.image-slot{position:relative;width:90px;height:90px;border:1px solid #406367}
.image-slot img{width:100%;height:100%;object-fit:cover}
.image-slot input{position:absolute;inset:auto 0 0 0;width:100%;font-size:8px;opacity:.6}
.slot-empty{display:flex;flex-direction:column;align-items:center;justify-content:center;height:70px;cursor:pointer}
.cover{position:absolute;bottom:18px;left:0;right:0;background:#3a77ff;color:#fff;font-size:10px;text-align:center}
.image-note{font-size:12px;color:#d32f2f}
.tabs{display:flex;gap:0;margin-bottom:8px}
.tab{flex:1;padding:8px;border:none;border-bottom:3px solid transparent;background:none;cursor:pointer}
.tab.active{border-bottom-color:#23e5db;font-weight:bold}
.profile .avatar{display:inline-flex;width:80px;height:80px;border-radius:50%;overflow:hidden;background:#ebeeef;align-items:center;justify-content:center}
.profile img{width:100%;height:100%;object-fit:cover}
.actions{padding:16px 24px}
.post{background:#002f34;color:#fff;border:none;padding:12px 24px;font-weight:bold;cursor:pointer}
.hidden-default{position:absolute;left:-9999px}
.refresh{font-size:12px}
.notification{position:fixed;top:16px;right:16px;background:#2e7d32;color:#fff;padding:12px 20px;border-radius:4px}
`
