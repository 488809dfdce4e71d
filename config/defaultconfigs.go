package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawCoordinates: true,
		Colors: ConfigColors{
			LightSquare: 180,
			DarkSquare:  137,
			WhitePiece:  255,
			BlackPiece:  232,
			Marker:      94,
			CursorBG:    4,
			SelectedBG:  2,
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Server: ServerConfig{
			URL:            "http://127.0.0.1:5000",
			TimeoutSeconds: 0,
			Fog:            false,
		},
		LogLevel: "info",
	}
}
