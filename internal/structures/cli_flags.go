package structures

type CliFlags struct {
	ConfigPath string `short:"c" long:"config" description:"Path to the YAML config" default:"config/config.yml"`
	DebugMode  bool   `short:"d" long:"debug" description:"Debug logging"`
	AssumeYes  bool   `short:"y" long:"yes" description:"Commit without asking for confirmation"`
	DryRun     bool   `long:"dry-run" description:"Write the snapshot only, leave the target untouched"`
}
