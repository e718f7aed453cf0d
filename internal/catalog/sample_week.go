package catalog

// The sample week rotates three day templates: Monday/Thursday/Sunday,
// Tuesday/Friday and Wednesday/Saturday share recipes but keep their own ids.

func oatsWithFruit(id string) Meal {
	return Meal{
		ID:          id,
		Name:        "Avena con Frutas y Proteína",
		Ingredients: []string{"Avena (50g)", "Plátano (1 mediano)", "Proteína en polvo (1 scoop)", "Nueces (10g)", "Canela"},
		Steps:       []string{"Cocinar avena con agua", "Agregar proteína en polvo", "Decorar con plátano y nueces", "Espolvorear canela"},
		Nutrition:   Nutrition{Calories: 420, ProteinG: 28, CarbsG: 45, FatG: 12},
		PrepMinutes: 10,
		Image:       ImageOatsFruit,
	}
}

func chickenQuinoaSalad(id string) Meal {
	return Meal{
		ID:          id,
		Name:        "Ensalada de Pollo y Quinoa",
		Ingredients: []string{"Pechuga de pollo (150g)", "Quinoa (80g)", "Espinacas (100g)", "Tomate cherry (100g)", "Aguacate (1/2)", "Aceite de oliva (1 cda)"},
		Steps:       []string{"Cocinar quinoa", "Asar pollo a la plancha", "Mezclar vegetales", "Servir con aderezo de aceite de oliva"},
		Nutrition:   Nutrition{Calories: 520, ProteinG: 42, CarbsG: 35, FatG: 18},
		PrepMinutes: 20,
		Image:       ImageChickenSalad,
	}
}

func salmonWithVegetables(id string) Meal {
	return Meal{
		ID:          id,
		Name:        "Salmón con Vegetales al Vapor",
		Ingredients: []string{"Salmón (120g)", "Brócoli (150g)", "Calabacín (100g)", "Zanahoria (80g)", "Limón", "Hierbas finas"},
		Steps:       []string{"Cocinar salmón al horno", "Vapor los vegetales", "Sazonar con limón y hierbas", "Servir caliente"},
		Nutrition:   Nutrition{Calories: 380, ProteinG: 35, CarbsG: 15, FatG: 20},
		PrepMinutes: 25,
		Image:       ImageSalmonVeg,
	}
}

func eggWhiteOmelette(id string) Meal {
	return Meal{
		ID:          id,
		Name:        "Tortilla de Claras con Vegetales",
		Ingredients: []string{"Claras de huevo (4)", "Espinacas (50g)", "Tomate (1)", "Champiñones (50g)", "Aceite en spray"},
		Steps:       []string{"Saltear vegetales", "Batir claras", "Cocinar tortilla", "Servir caliente"},
		Nutrition:   Nutrition{Calories: 180, ProteinG: 20, CarbsG: 8, FatG: 5},
		PrepMinutes: 12,
		Image:       ImageOatsFruit,
	}
}

func tunaAvocadoBowl(id string) Meal {
	return Meal{
		ID:          id,
		Name:        "Bowl de Atún y Aguacate",
		Ingredients: []string{"Atún en agua (150g)", "Aguacate (1)", "Lechuga (100g)", "Pepino (1)", "Limón", "Aceite de oliva (1 cdta)"},
		Steps:       []string{"Preparar base de lechuga", "Agregar atún escurrido", "Cortar aguacate y pepino", "Aliñar con limón y aceite"},
		Nutrition:   Nutrition{Calories: 450, ProteinG: 35, CarbsG: 12, FatG: 28},
		PrepMinutes: 10,
		Image:       ImageChickenSalad,
	}
}

func grilledChickenSweetPotato(id string) Meal {
	return Meal{
		ID:          id,
		Name:        "Pechuga a la Plancha con Batata",
		Ingredients: []string{"Pechuga de pollo (150g)", "Batata (200g)", "Espárragos (150g)", "Ajo", "Hierbas aromáticas"},
		Steps:       []string{"Hornear batata", "Cocinar pechuga a la plancha", "Saltear espárragos", "Sazonar y servir"},
		Nutrition:   Nutrition{Calories: 420, ProteinG: 38, CarbsG: 30, FatG: 8},
		PrepMinutes: 30,
		Image:       ImageSalmonVeg,
	}
}

func greenProteinSmoothie(id string) Meal {
	return Meal{
		ID:          id,
		Name:        "Smoothie Verde Proteico",
		Ingredients: []string{"Espinacas (50g)", "Plátano (1)", "Proteína vegetal (1 scoop)", "Leche de almendras (200ml)", "Chía (1 cda)"},
		Steps:       []string{"Licuar todos los ingredientes", "Servir inmediatamente", "Decorar con semillas de chía"},
		Nutrition:   Nutrition{Calories: 350, ProteinG: 25, CarbsG: 35, FatG: 8},
		PrepMinutes: 5,
		Image:       ImageOatsFruit,
	}
}

func chickpeaCurry(id string) Meal {
	return Meal{
		ID:          id,
		Name:        "Curry de Garbanzos",
		Ingredients: []string{"Garbanzos cocidos (200g)", "Leche de coco (100ml)", "Tomate (2)", "Cebolla (1)", "Curry en polvo", "Espinacas"},
		Steps:       []string{"Sofreír cebolla", "Agregar tomate y especias", "Incorporar garbanzos", "Finalizar con espinacas"},
		Nutrition:   Nutrition{Calories: 380, ProteinG: 18, CarbsG: 45, FatG: 12},
		PrepMinutes: 25,
		Image:       ImageChickenSalad,
	}
}

func bakedHake(id string) Meal {
	return Meal{
		ID:          id,
		Name:        "Merluza al Horno con Verduras",
		Ingredients: []string{"Merluza (150g)", "Calabacín (1)", "Berenjena (1/2)", "Pimiento (1)", "Aceite de oliva", "Limón"},
		Steps:       []string{"Cortar verduras en bastones", "Condimentar pescado", "Hornear todo junto", "Servir con limón"},
		Nutrition:   Nutrition{Calories: 320, ProteinG: 32, CarbsG: 15, FatG: 12},
		PrepMinutes: 35,
		Image:       ImageSalmonVeg,
	}
}

var sampleWeek = []DayMenu{
	{Day: "Lunes", Breakfast: oatsWithFruit("b1"), Lunch: chickenQuinoaSalad("l1"), Dinner: salmonWithVegetables("d1")},
	{Day: "Martes", Breakfast: eggWhiteOmelette("b2"), Lunch: tunaAvocadoBowl("l2"), Dinner: grilledChickenSweetPotato("d2")},
	{Day: "Miércoles", Breakfast: greenProteinSmoothie("b3"), Lunch: chickpeaCurry("l3"), Dinner: bakedHake("d3")},
	{Day: "Jueves", Breakfast: oatsWithFruit("b4"), Lunch: chickenQuinoaSalad("l4"), Dinner: salmonWithVegetables("d4")},
	{Day: "Viernes", Breakfast: eggWhiteOmelette("b5"), Lunch: tunaAvocadoBowl("l5"), Dinner: grilledChickenSweetPotato("d5")},
	{Day: "Sábado", Breakfast: greenProteinSmoothie("b6"), Lunch: chickpeaCurry("l6"), Dinner: bakedHake("d6")},
	{Day: "Domingo", Breakfast: oatsWithFruit("b7"), Lunch: chickenQuinoaSalad("l7"), Dinner: salmonWithVegetables("d7")},
}
