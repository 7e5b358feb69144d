package knowledge

// Default returns the built-in hardware-store vocabulary.
func Default() *Base {
	return &Base{
		Entries:  defaultEntries(),
		Broad:    defaultBroad(),
		Semantic: defaultSemantic(),
		Variants: [][]string{
			{"electricidad", "eléctrico", "eléctrica", "eléctricos", "eléctricas", "electrical", "electric"},
			{"construcción", "construcciones", "construction"},
			{"herramienta", "herramientas", "tool", "tools"},
			{"plomería", "plomero", "plumbing"},
			{"pintura", "pinturas", "paint", "paints"},
			{"tornillo", "tornillos", "tornillería", "screw", "screws"},
			{"jardín", "jardinería", "garden", "gardening"},
			{"adhesivo", "adhesivos", "pegamento", "pegamentos"},
			{"ferretería", "ferreterías", "hardware"},
			{"seguridad", "safety"},
		},
		Synonyms: [][]string{
			{"herramienta", "utensilio", "tool"},
			{"eléctrico", "electricidad", "iluminación", "electric"},
			{"plomería", "hidráulico", "sanitario", "plumbing"},
			{"tornillo", "fijación", "sujeción", "fastener"},
			{"pintura", "recubrimiento", "acabado", "paint"},
			{"construcción", "obra", "albañilería"},
			{"jardín", "exterior", "riego"},
			{"seguridad", "protección", "safety"},
		},
		Generic: []string{
			"de", "del", "la", "las", "el", "los", "y", "e", "para", "con", "en",
			"material", "materiales", "artículos", "productos", "accesorios",
			"general", "generales", "varios",
		},
	}
}

func defaultEntries() []Entry {
	return []Entry{
		{
			Key:         "herramientas",
			Name:        "Herramientas",
			Description: "Herramientas manuales de uso general",
			Primary: []string{
				"martillo", "destornillador", "desarmador", "llave", "alicate",
				"pinza", "serrucho", "cincel", "formón", "flexómetro", "nivel",
			},
			Secondary: []string{"mango", "acero", "truper", "stanley", "pretul", "urrea", "profesional", "juego"},
			Patterns:  []string{`\b(martillo|destornillador|desarmador|alicates?|pinzas?|serrucho|cincel|flexometro)\b`},
			Weight:    0.9,
		},
		{
			Key:         "herramientas_electricas",
			Name:        "Herramientas Eléctricas",
			Description: "Herramientas eléctricas e inalámbricas",
			Primary: []string{
				"taladro", "rotomartillo", "esmeriladora", "pulidora", "caladora",
				"lijadora", "atornillador", "sierra circular",
			},
			Secondary: []string{"inalámbrico", "batería", "watts", "volts", "motor", "dewalt", "makita", "bosch"},
			Patterns:  []string{`\b(taladro|rotomartillo|esmeriladora|pulidora|caladora|lijadora)\b`},
			Weight:    0.9,
		},
		{
			Key:         "electrico",
			Name:        "Eléctrico",
			Description: "Material eléctrico e iluminación",
			Primary: []string{
				"cable", "contacto", "apagador", "foco", "interruptor",
				"extensión", "enchufe", "clavija", "breaker", "pastilla térmica",
			},
			Secondary: []string{"cobre", "calibre", "voltaje", "127v", "thw", "socket", "lámpara"},
			Patterns:  []string{`\b(cable|apagador|contacto|interruptor|focos?|clavija|breaker)\b`},
			Weight:    0.85,
		},
		{
			Key:         "plomeria",
			Name:        "Plomería",
			Description: "Tubería, conexiones y accesorios hidráulicos",
			Primary: []string{
				"tubo", "tubería", "codo", "llave de paso", "válvula", "grifo",
				"mezcladora", "regadera", "coladera", "cople",
			},
			Secondary: []string{"pvc", "cpvc", "hidráulico", "agua", "rosca", "pulgada"},
			Patterns:  []string{`\b(tubos?|tuberia|codos?|valvulas?|grifos?|mezcladora|regadera|coladera)\b`},
			Weight:    0.85,
		},
		{
			Key:         "tornilleria",
			Name:        "Tornillería",
			Description: "Tornillos, tuercas y elementos de fijación",
			Primary: []string{
				"tornillo", "tuerca", "rondana", "arandela", "taquete", "pija",
				"perno", "clavo", "remache", "ancla",
			},
			Secondary: []string{"phillips", "galvanizado", "hexagonal", "inoxidable", "cabeza", "rosca"},
			Patterns:  []string{`\b(tornillos?|tuercas?|rondanas?|arandelas?|taquetes?|pijas?|pernos?|clavos?|remaches?)\b`},
			Weight:    0.9,
		},
		{
			Key:         "pinturas",
			Name:        "Pinturas",
			Description: "Pinturas, esmaltes y accesorios para pintar",
			Primary: []string{
				"pintura", "esmalte", "barniz", "sellador", "impermeabilizante",
				"thinner", "brocha", "rodillo", "aerosol",
			},
			Secondary: []string{"vinílica", "acrílica", "litro", "galón", "cubeta", "brillante", "comex"},
			Patterns:  []string{`\b(pinturas?|esmalte|barniz|sellador|impermeabilizante|thinner|brochas?|rodillos?)\b`},
			Weight:    0.85,
		},
		{
			Key:         "construccion",
			Name:        "Construcción",
			Description: "Materiales de construcción y obra negra",
			Primary: []string{
				"cemento", "mortero", "block", "varilla", "arena", "grava",
				"yeso", "ladrillo", "concreto", "malla",
			},
			Secondary: []string{"bulto", "saco", "estructural", "obra", "alambre"},
			Patterns:  []string{`\b(cemento|mortero|varillas?|yeso|ladrillos?|concreto|blocks?)\b`},
			Weight:    0.8,
		},
		{
			Key:         "jardineria",
			Name:        "Jardinería",
			Description: "Herramientas y accesorios de jardín y riego",
			Primary: []string{
				"manguera", "rastrillo", "tijera de podar", "aspersor", "maceta",
				"carretilla", "podadora",
			},
			Secondary: []string{"jardín", "riego", "pasto", "planta", "tierra"},
			Patterns:  []string{`\b(manguera|rastrillo|aspersor|macetas?|carretilla|podadora)\b`},
			Weight:    0.8,
		},
		{
			Key:         "seguridad",
			Name:        "Seguridad Industrial",
			Description: "Equipo de protección personal",
			Primary: []string{
				"guantes", "casco", "lentes de seguridad", "chaleco", "botas",
				"tapones auditivos", "mascarilla", "arnés",
			},
			Secondary: []string{"protección", "industrial", "reflejante", "nitrilo"},
			Patterns:  []string{`\b(guantes?|casco|chaleco|mascarilla|arnes)\b`},
			Weight:    0.8,
		},
		{
			Key:         "adhesivos",
			Name:        "Adhesivos y Selladores",
			Description: "Pegamentos, cintas y siliconas",
			Primary:     []string{"pegamento", "silicón", "cinta", "resistol", "epóxico", "adhesivo"},
			Secondary:   []string{"transparente", "secado rápido"},
			Patterns:    []string{`\b(pegamento|silicon|silicona|cinta|epoxico|adhesivo)\b`},
			Weight:      0.75,
		},
	}
}

func defaultBroad() []BroadCategory {
	return []BroadCategory{
		{ID: "ferreteria-general", Name: "Ferretería General", Keywords: []string{"ferretería", "hardware", "candado", "cerradura", "bisagra", "jaladera", "cadena"}},
		{ID: "herramientas-manuales", Name: "Herramientas Manuales", Keywords: []string{"herramienta", "manual", "martillo", "desarmador", "llave", "pinza"}},
		{ID: "herramientas-electricas", Name: "Herramientas Eléctricas", Keywords: []string{"taladro", "inalámbric", "batería", "motor"}},
		{ID: "material-electrico", Name: "Material Eléctrico", Keywords: []string{"eléctric", "cable", "foco", "contacto", "apagador", "lámpara"}},
		{ID: "plomeria", Name: "Plomería", Keywords: []string{"plomería", "tubo", "agua", "tinaco", "bomba"}},
		{ID: "construccion", Name: "Construcción", Keywords: []string{"construcción", "cemento", "obra", "block", "varilla"}},
		{ID: "pinturas-acabados", Name: "Pinturas y Acabados", Keywords: []string{"pintura", "acabado", "brocha", "barniz"}},
		{ID: "tornilleria-fijacion", Name: "Tornillería y Fijación", Keywords: []string{"tornillo", "fijación", "ancla", "clavo", "tuerca"}},
	}
}

func defaultSemantic() []SemanticHint {
	return []SemanticHint{
		{Key: "herramientas_electricas", Terms: []string{"power tool", "cordless", "electric drill"}},
		{Key: "herramientas", Terms: []string{"hand tool", "tool", "herramienta"}},
		{Key: "electrico", Terms: []string{"electrical", "wiring", "electric", "iluminación"}},
		{Key: "plomeria", Terms: []string{"plumbing", "faucet", "pipe", "plomer"}},
		{Key: "tornilleria", Terms: []string{"screw", "bolt", "fastener"}},
		{Key: "pinturas", Terms: []string{"paint", "coating"}},
		{Key: "construccion", Terms: []string{"construction", "concrete", "cement"}},
		{Key: "jardineria", Terms: []string{"garden", "lawn", "hose"}},
		{Key: "seguridad", Terms: []string{"safety", "glove", "helmet"}},
		{Key: "adhesivos", Terms: []string{"glue", "adhesive", "tape"}},
	}
}
