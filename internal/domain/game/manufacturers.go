package game

// OtherManufacturer is the sentinel category for unmapped platforms.
const OtherManufacturer = "Other"

// manufacturerByPlatform maps each known platform to its manufacturer.
// Built from the vendor families the reference dataset was encoded with.
var manufacturerByPlatform = map[string]string{ //nolint:gochecknoglobals // static lookup table
	// Nintendo
	"Nintendo 64":       "Nintendo",
	"GameCube":          "Nintendo",
	"Wii":               "Nintendo",
	"Wii U":             "Nintendo",
	"Nintendo Switch":   "Nintendo",
	"Nintendo Switch 2": "Nintendo",
	"Game Boy Advance":  "Nintendo",
	"DS":                "Nintendo",
	"3DS":               "Nintendo",
	// Sony
	"PlayStation":      "Sony",
	"PlayStation 2":    "Sony",
	"PlayStation 3":    "Sony",
	"PlayStation 4":    "Sony",
	"PlayStation 5":    "Sony",
	"PSP":              "Sony",
	"PlayStation Vita": "Sony",
	// Microsoft
	"Xbox":          "Microsoft",
	"Xbox 360":      "Microsoft",
	"Xbox One":      "Microsoft",
	"Xbox Series X": "Microsoft",
	// Others
	"Dreamcast":         "Sega",
	"iOS (iPhone/iPad)": "Apple",
	"Meta Quest":        "VR",
	"PC":                "PC",
}

// ManufacturerFor resolves the manufacturer for a platform. Overrides win
// over the built-in table; unmapped platforms resolve to OtherManufacturer.
func ManufacturerFor(platform string, overrides map[string]string) string {
	if m, ok := overrides[platform]; ok && m != "" {
		return m
	}
	if m, ok := manufacturerByPlatform[platform]; ok {
		return m
	}
	return OtherManufacturer
}
