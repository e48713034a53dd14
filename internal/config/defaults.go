package config

const (
	defaultLogDir      = "~/.local/share/sundry/logs"
	defaultDownloadDir = "~/Downloads"
	defaultModsDir     = "~/.factorio/mods"
	defaultOldModsDir  = "~/.factorio/old_mods"
	defaultFFmpeg      = "ffmpeg"
	defaultFFprobe     = "ffprobe"
	defaultXFoil       = "xfoil"
	defaultSevenZip    = "7z"
	defaultMagicPDF    = "magic-pdf"
	defaultBBDown      = "BBDown"
	defaultGARbro      = "garbro"
	defaultGit         = "git"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:      defaultLogDir,
			DownloadDir: defaultDownloadDir,
			ModsDir:     defaultModsDir,
			OldModsDir:  defaultOldModsDir,
		},
		Tools: Tools{
			FFmpeg:   defaultFFmpeg,
			FFprobe:  defaultFFprobe,
			XFoil:    defaultXFoil,
			SevenZip: defaultSevenZip,
			MagicPDF: defaultMagicPDF,
			BBDown:   defaultBBDown,
			GARbro:   defaultGARbro,
			Git:      defaultGit,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
