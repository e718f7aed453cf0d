package shopping

// ExportFilename is the name offered for the exported shopping list.
const ExportFilename = "lista-compras-menu-fit.txt"

// Item is one line of the shopping checklist. Checked is the only field
// that changes.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Category string `json:"category"`
	Checked  bool   `json:"checked"`
}

// SampleItems returns the fixed shopping list shown with the sample week.
// It is not derived from the menu.
func SampleItems() []Item {
	return []Item{
		{ID: "1", Name: "Pechuga de pollo", Quantity: "1 kg", Category: "Proteínas"},
		{ID: "2", Name: "Salmón fresco", Quantity: "500g", Category: "Proteínas"},
		{ID: "3", Name: "Huevos", Quantity: "12 unidades", Category: "Proteínas"},
		{ID: "4", Name: "Proteína en polvo", Quantity: "1 bote", Category: "Suplementos"},
		{ID: "5", Name: "Quinoa", Quantity: "500g", Category: "Cereales"},
		{ID: "6", Name: "Avena", Quantity: "1 kg", Category: "Cereales"},
		{ID: "7", Name: "Brócoli", Quantity: "2 unidades", Category: "Vegetales"},
		{ID: "8", Name: "Espinacas", Quantity: "200g", Category: "Vegetales"},
		{ID: "9", Name: "Tomate cherry", Quantity: "300g", Category: "Vegetales"},
		{ID: "10", Name: "Calabacín", Quantity: "3 unidades", Category: "Vegetales"},
		{ID: "11", Name: "Aguacate", Quantity: "4 unidades", Category: "Grasas"},
		{ID: "12", Name: "Nueces", Quantity: "200g", Category: "Grasas"},
		{ID: "13", Name: "Aceite de oliva", Quantity: "500ml", Category: "Grasas"},
		{ID: "14", Name: "Plátanos", Quantity: "6 unidades", Category: "Frutas"},
		{ID: "15", Name: "Limones", Quantity: "4 unidades", Category: "Frutas"},
	}
}

// CategoryIcon returns the emoji shown next to a category name.
func CategoryIcon(category string) string {
	switch category {
	case "Proteínas":
		return "🥩"
	case "Cereales":
		return "🌾"
	case "Vegetales":
		return "🥬"
	case "Frutas":
		return "🍎"
	case "Grasas":
		return "🥑"
	case "Suplementos":
		return "💊"
	default:
		return "🛒"
	}
}
