package lexicon

// Built-in table set. Multi-lingual variants live inside each list rather
// than behind a language-detection step: a match in any language is treated
// identically. Order matters; the first listed matching keyword wins.

func builtinTables() *Tables {
	return &Tables{
		NonVegan:      nonVeganKeywords(),
		Vegan:         veganKeywords(),
		Categories:    categoryTable(),
		Substitutions: substitutionTable(),
		Preferences:   preferenceTable(),
		Modifiers:     modifierWords(),
		MaxNameLen:    50,
	}
}

// nonVeganKeywords is the safety-critical list: it is always checked before
// the vegan list, so a name containing both kinds of token resolves non-vegan.
func nonVeganKeywords() []string {
	return []string{
		// meat
		"chicken", "beef", "pork", "lamb", "veal", "turkey", "duck", "goose",
		"bacon", "ham", "sausage", "salami", "pepperoni", "chorizo",
		"prosciutto", "pastrami", "mortadella", "meat", "steak", "mince",
		"poultry", "venison", "rabbit", "foie gras", "liver", "tripe",
		"poulet", "boeuf", "porc", "agneau", "jambon", "viande",
		"pollo", "carne", "cerdo", "cordero", "jamon",
		"huhn", "rindfleisch", "schwein", "fleisch", "speck",
		// fish and seafood
		"fish", "salmon", "tuna", "cod", "haddock", "trout", "sardine",
		"anchovy", "anchovies", "mackerel", "herring", "shrimp", "prawn",
		"crab", "lobster", "oyster", "mussel", "clam", "scallop", "squid",
		"octopus", "calamari", "caviar", "roe", "seafood",
		"poisson", "crevette", "saumon", "thon",
		"pescado", "atun", "gamba", "marisco",
		"fisch", "lachs", "garnele",
		// dairy
		"milk", "cheese", "butter", "cream", "yogurt", "yoghurt", "ghee",
		"curd", "whey", "casein", "caseinate", "lactose", "lactic",
		"buttermilk", "kefir", "quark", "mascarpone", "ricotta", "mozzarella",
		"parmesan", "cheddar", "gouda", "brie", "feta", "halloumi",
		"custard", "dairy",
		"lait", "fromage", "beurre", "creme", "yaourt",
		"leche", "queso", "mantequilla", "nata",
		"milch", "kase", "sahne", "rahm", "molke",
		// eggs
		"egg", "eggs", "albumen", "albumin", "mayonnaise", "meringue",
		"ovalbumin", "lysozyme",
		"oeuf", "huevo", "eier",
		// honey and other bee products
		"honey", "beeswax", "propolis", "royal jelly",
		"miel", "honig",
		// hidden animal derivatives
		"gelatin", "gelatine", "collagen", "lard", "tallow", "suet",
		"rennet", "pepsin", "isinglass", "carmine", "cochineal", "shellac",
		"bone char", "bone broth", "anchovy paste", "fish sauce",
		"oyster sauce", "worcestershire", "lanolin", "squalene",
		"e120", "e441", "e542", "e901", "e904", "e913", "e966",
	}
}

func veganKeywords() []string {
	return []string{
		// explicit analogues
		"tofu", "tempeh", "seitan", "nutritional yeast", "aquafaba",
		"vegan", "plant-based", "plant based", "soy", "soja",
		// vegetables
		"tomato", "onion", "garlic", "carrot", "potato", "spinach", "kale",
		"broccoli", "cauliflower", "zucchini", "courgette", "aubergine",
		"eggplant", "pepper", "cucumber", "lettuce", "cabbage", "celery",
		"leek", "beet", "beetroot", "radish", "turnip", "pumpkin", "squash",
		"mushroom", "asparagus", "artichoke", "pea", "sweetcorn", "corn",
		"tomate", "oignon", "ail", "carotte", "champignon",
		"cebolla", "zanahoria", "espinaca",
		// fruits
		"apple", "banana", "orange", "lemon", "lime", "mango", "pineapple",
		"strawberry", "raspberry", "blueberry", "blackberry", "cherry",
		"peach", "pear", "plum", "grape", "melon", "watermelon", "apricot",
		"fig", "date", "kiwi", "pomegranate", "coconut", "avocado", "olive",
		"pomme", "banane", "citron", "fraise", "manzana", "platano", "fresa",
		// grains
		"rice", "wheat", "oat", "oats", "barley", "rye", "quinoa", "millet",
		"buckwheat", "couscous", "bulgur", "spelt", "semolina", "flour",
		"bread", "pasta", "noodle", "polenta", "cornmeal", "riz", "ble",
		"avoine", "arroz", "trigo", "reis", "hafer",
		// legumes
		"lentil", "chickpea", "bean", "soybean", "edamame", "hummus",
		"lentille", "pois chiche", "haricot", "lenteja", "garbanzo",
		// nuts and seeds
		"almond", "cashew", "walnut", "pecan", "hazelnut", "pistachio",
		"macadamia", "peanut", "chestnut", "sesame", "tahini", "chia",
		"flax", "flaxseed", "linseed", "hemp", "sunflower seed",
		"pumpkin seed", "amande", "noisette", "almendra", "cacahuete",
		// plant derivatives
		"sugar", "agave", "maple syrup", "molasses", "cocoa", "cacao", "coffee",
		"tea", "herb", "spice", "vinegar", "yeast", "seaweed", "nori",
		"agar", "pectin", "guar gum", "xanthan",
	}
}

// categoryTable is scanned in declaration order; nuts_seeds precedes dairy so
// "almond milk" lands in nuts_seeds, and meat precedes beverages so "chicken
// broth" lands in meat.
func categoryTable() []CategoryKeywords {
	return []CategoryKeywords{
		{Category: "nuts_seeds", Keywords: []string{
			"almond", "cashew", "walnut", "pecan", "hazelnut", "pistachio",
			"macadamia", "peanut", "chestnut", "sesame", "tahini", "chia",
			"flax", "linseed", "hemp", "sunflower seed", "pumpkin seed",
			"nuts", "seeds", "amande", "almendra",
		}},
		{Category: "legumes", Keywords: []string{
			"lentil", "chickpea", "bean", "soybean", "edamame", "tofu",
			"tempeh", "hummus", "peas", "split pea", "snap pea",
			"lentille", "haricot", "garbanzo",
		}},
		{Category: "meat", Keywords: []string{
			"chicken", "beef", "pork", "lamb", "veal", "turkey", "duck",
			"bacon", "ham", "sausage", "salami", "meat", "steak", "poultry",
			"venison", "liver", "poulet", "boeuf", "viande", "pollo", "carne",
		}},
		{Category: "seafood", Keywords: []string{
			"fish", "salmon", "tuna", "cod", "trout", "sardine", "anchovy",
			"shrimp", "prawn", "crab", "lobster", "oyster", "mussel", "clam",
			"scallop", "squid", "seafood", "poisson", "pescado",
		}},
		{Category: "eggs", Keywords: []string{
			"egg", "albumen", "meringue", "mayonnaise", "oeuf", "huevo",
		}},
		{Category: "dairy", Keywords: []string{
			"milk", "cheese", "butter", "cream", "yogurt", "yoghurt", "ghee",
			"curd", "whey", "kefir", "custard", "dairy", "lait", "fromage",
			"leche", "queso", "milch", "kase",
		}},
		{Category: "vegetables", Keywords: []string{
			"tomato", "onion", "garlic", "carrot", "potato", "spinach",
			"kale", "broccoli", "cauliflower", "zucchini", "aubergine",
			"eggplant", "pepper", "cucumber", "lettuce", "cabbage", "celery",
			"leek", "beet", "radish", "pumpkin", "squash", "mushroom",
			"asparagus", "artichoke", "vegetable", "tomate", "oignon",
			"cebolla",
		}},
		{Category: "fruits", Keywords: []string{
			"apple", "banana", "orange", "lemon", "lime", "mango",
			"pineapple", "strawberry", "raspberry", "blueberry", "cherry",
			"peach", "pear", "plum", "grape", "melon", "apricot", "fig",
			"kiwi", "coconut", "avocado", "fruit", "pomme", "banane",
			"manzana",
		}},
		{Category: "grains", Keywords: []string{
			"rice", "wheat", "oat", "barley", "rye", "quinoa", "millet",
			"buckwheat", "couscous", "bulgur", "flour", "bread", "pasta",
			"noodle", "polenta", "cereal", "grain", "riz", "arroz", "reis",
		}},
		{Category: "spices", Keywords: []string{
			"salt", "cumin", "paprika", "turmeric", "cinnamon", "nutmeg",
			"clove", "cardamom", "coriander", "oregano", "basil", "thyme",
			"rosemary", "sage", "chili", "chilli", "cayenne", "ginger",
			"spice", "herb", "epice",
		}},
		{Category: "oils_fats", Keywords: []string{
			"oil", "lard", "tallow", "margarine", "shortening", "fat",
			"huile", "aceite",
		}},
		{Category: "sweeteners", Keywords: []string{
			"sugar", "honey", "syrup", "agave", "molasses", "stevia",
			"sweetener", "sucre", "azucar", "miel",
		}},
		{Category: "beverages", Keywords: []string{
			"juice", "coffee", "tea", "soda", "cola", "beer", "wine",
			"cider", "broth", "stock", "water", "drink", "jus", "zumo",
		}},
		{Category: "hidden_animal", Keywords: []string{
			"gelatin", "gelatine", "collagen", "rennet", "isinglass",
			"carmine", "cochineal", "shellac", "casein", "lactose",
			"whey powder", "bone char", "lanolin", "e120", "e441", "e904",
		}},
	}
}

// substitutionTable keys double as the veganizer's direct-scan word list.
// Longer, more specific keys come before keys they contain ("sour cream"
// before "cream") so containment lookups stay deterministic and sane.
func substitutionTable() []SubstitutionEntry {
	return []SubstitutionEntry{
		{Name: "sour cream", Substitutes: []string{"coconut yogurt", "cashew sour cream", "silken tofu blend"}},
		{Name: "heavy cream", Substitutes: []string{"coconut cream", "cashew cream", "oat cream"}},
		{Name: "whipped cream", Substitutes: []string{"whipped coconut cream", "aquafaba whip"}},
		{Name: "cream cheese", Substitutes: []string{"cashew cream cheese", "tofu spread"}},
		{Name: "condensed milk", Substitutes: []string{"coconut condensed milk"}},
		{Name: "buttermilk", Substitutes: []string{"soured oatmilk", "soured soymilk"}},
		{Name: "cream", Substitutes: []string{"coconut cream", "cashew cream", "oat cream"}},
		{Name: "milk", Substitutes: []string{"oatmilk", "soymilk", "almond drink", "coconut drink"}},
		{Name: "butter", Substitutes: []string{"margarine", "coconut oil", "olive oil"}},
		{Name: "ghee", Substitutes: []string{"coconut oil", "margarine"}},
		{Name: "cheese", Substitutes: []string{"cashew cheese", "nutritional yeast", "tofu ricotta"}},
		{Name: "yogurt", Substitutes: []string{"coconut yogurt", "soy yogurt", "oat yogurt"}},
		{Name: "yoghurt", Substitutes: []string{"coconut yogurt", "soy yogurt", "oat yogurt"}},
		{Name: "mayonnaise", Substitutes: []string{"vegan mayo", "aquafaba mayo"}},
		{Name: "egg", Substitutes: []string{"flaxseed meal", "applesauce", "mashed banana", "silken tofu"}},
		{Name: "honey", Substitutes: []string{"maple syrup", "agave nectar", "date syrup"}},
		{Name: "gelatin", Substitutes: []string{"agar agar", "pectin", "carrageenan"}},
		{Name: "gelatine", Substitutes: []string{"agar agar", "pectin"}},
		{Name: "chicken broth", Substitutes: []string{"vegetable broth", "mushroom broth"}},
		{Name: "beef broth", Substitutes: []string{"mushroom broth", "vegetable broth"}},
		{Name: "chicken stock", Substitutes: []string{"vegetable stock", "mushroom stock"}},
		{Name: "beef stock", Substitutes: []string{"mushroom stock", "vegetable stock"}},
		{Name: "chicken", Substitutes: []string{"tofu", "seitan", "jackfruit", "soy curls"}},
		{Name: "beef", Substitutes: []string{"seitan", "lentils", "mushrooms", "textured soy protein"}},
		{Name: "pork", Substitutes: []string{"jackfruit", "seitan", "tempeh"}},
		{Name: "bacon", Substitutes: []string{"tempeh strips", "smoked coconut flakes", "shiitake strips"}},
		{Name: "ham", Substitutes: []string{"smoked tofu", "seitan slices"}},
		{Name: "sausage", Substitutes: []string{"plant sausage", "seasoned seitan"}},
		{Name: "turkey", Substitutes: []string{"seitan roast", "stuffed squash"}},
		{Name: "lamb", Substitutes: []string{"seitan", "king oyster mushrooms"}},
		{Name: "fish sauce", Substitutes: []string{"seaweed sauce", "mushroom soy sauce"}},
		{Name: "fish", Substitutes: []string{"banana blossom", "marinated tofu", "hearts of palm"}},
		{Name: "salmon", Substitutes: []string{"marinated carrot", "banana blossom"}},
		{Name: "tuna", Substitutes: []string{"mashed chickpeas", "jackfruit"}},
		{Name: "shrimp", Substitutes: []string{"king oyster mushroom", "konjac"}},
		{Name: "anchovy", Substitutes: []string{"capers", "olive tapenade"}},
		{Name: "lard", Substitutes: []string{"vegetable shortening", "coconut oil"}},
		{Name: "worcestershire", Substitutes: []string{"soy sauce", "tamari"}},
	}
}

func preferenceTable() []PreferenceEntry {
	return []PreferenceEntry{
		// baking-driven preferences: first workable option per ingredient
		{Name: "milk", Preferred: []string{"oatmilk", "soymilk"}},
		{Name: "butter", Preferred: []string{"margarine", "coconut oil"}},
		{Name: "egg", Preferred: []string{"flaxseed meal", "applesauce"}},
		{Name: "cheese", Preferred: []string{"nutritional yeast", "cashew cheese"}},
		{Name: "chicken", Preferred: []string{"tofu", "seitan"}},
	}
}

// modifierWords are stripped from names as whole words: freshness, processing
// and fat-content qualifiers that do not change ingredient identity.
func modifierWords() []string {
	return []string{
		"fresh", "frozen", "dried", "raw", "organic", "natural", "whole",
		"chopped", "sliced", "diced", "minced", "grated", "shredded",
		"ground", "crushed", "peeled", "pitted", "cooked", "boiled",
		"roasted", "toasted", "smoked", "canned", "tinned", "unsalted",
		"salted", "sweetened", "unsweetened", "reduced fat", "low fat",
		"lowfat", "nonfat", "fat free", "full fat", "light", "lite",
		"extra", "large", "small", "medium", "fine", "finely", "coarsely",
		"premium", "quality", "pure", "refined", "unrefined", "enriched",
		"fortified", "pasteurized", "homogenized",
	}
}
