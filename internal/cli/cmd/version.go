package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/retouch/internal/cli/styles"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Show version and build information",
	Annotations: map[string]string{annotationNoApp: "true"},
	RunE:        runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVarP(&versionShort, "short", "s", false, "print a single line")
}

func runVersion(_ *cobra.Command, _ []string) error {
	if versionShort {
		fmt.Println(buildInfo.String())
		return nil
	}
	cfg, _ := loadCommandConfig()
	fmt.Println(styles.NewAboutRenderer(styles.NewTheme(cfg)).Render(buildInfo))
	return nil
}
