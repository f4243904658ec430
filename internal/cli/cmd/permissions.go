package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/retouch/internal/cli/model"
	"github.com/bnema/retouch/internal/cli/styles"
	"github.com/bnema/retouch/internal/domain/entity"
)

var permissionsJSON bool

var permissionsCmd = &cobra.Command{
	Use:     "permissions",
	Aliases: []string{"perms"},
	Short:   "Show and request camera, photo library and notification access",
	RunE:    runPermissionsList,
}

var permissionsRequestCmd = &cobra.Command{
	Use:       "request <camera|photo_library|notifications>",
	Short:     "Ask for access to a resource",
	Args:      cobra.ExactArgs(1),
	ValidArgs: resourceNames(),
	RunE:      runPermissionsRequest,
}

var permissionsSettingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Open the system settings for this app",
	RunE:  runPermissionsSettings,
}

var permissionsSetCmd = &cobra.Command{
	Use:   "set <resource> <status>",
	Short: "Store a status (local backend only)",
	Long: `Store an authorization status for the local backend.

Statuses: not_determined, authorized, limited, denied, restricted.
limited only applies to photo_library.`,
	Args: cobra.ExactArgs(2),
	RunE: runPermissionsSet,
}

var permissionsResetCmd = &cobra.Command{
	Use:   "reset [resource]",
	Short: "Forget stored statuses (local backend only)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPermissionsReset,
}

func init() {
	rootCmd.AddCommand(permissionsCmd)
	permissionsCmd.AddCommand(permissionsRequestCmd)
	permissionsCmd.AddCommand(permissionsSettingsCmd)
	permissionsCmd.AddCommand(permissionsSetCmd)
	permissionsCmd.AddCommand(permissionsResetCmd)

	permissionsCmd.Flags().BoolVar(&permissionsJSON, "json", false, "output as JSON")
}

type permissionOutput struct {
	Resource string `json:"resource"`
	Status   string `json:"status"`
	Action   string `json:"action"`
}

func runPermissionsList(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	ctx := a.Ctx()

	for _, r := range entity.AllResources() {
		a.Gate.QueryStatus(ctx, r)
	}
	states := a.Gate.States()

	if permissionsJSON {
		out := make([]permissionOutput, 0, len(states))
		for _, s := range states {
			out = append(out, permissionOutput{Resource: string(s.Resource), Status: string(s.Status), Action: string(s.Action)})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Println(styles.NewPermissionsRenderer(a.Theme).Render(string(a.PermissionsBackend), states))
	return nil
}

func runPermissionsRequest(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	resource, err := parseResource(args[0])
	if err != nil {
		return err
	}
	ctx := a.Ctx()

	a.UsePresenter(model.NewConsolePresenter(a.Theme, nil, os.Stderr))
	action := a.Gate.Gate(ctx, resource)
	status := a.Gate.QueryStatus(ctx, resource)

	fmt.Println(styles.NewPermissionsRenderer(a.Theme).RenderResult(resource, action, status))
	if action == entity.ActionRedirectToSettings {
		fmt.Println(a.Theme.Subtle.Render("  Run 'retouch permissions settings' to change it."))
	}
	return nil
}

func runPermissionsSettings(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	if err := a.Settings.Open(a.Ctx()); err != nil {
		return fmt.Errorf("open system settings: %w", err)
	}
	return nil
}

func runPermissionsSet(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	if a.Local == nil {
		return fmt.Errorf("statuses are managed by the desktop portal; use 'retouch permissions settings'")
	}
	resource, err := parseResource(args[0])
	if err != nil {
		return err
	}
	status := entity.AuthorizationStatus(strings.ToLower(args[1]))
	if entity.ParseAuthorizationStatus(string(status)) != status {
		return fmt.Errorf("unknown status %q", args[1])
	}
	if err := a.Local.Set(a.Ctx(), resource, status); err != nil {
		return err
	}
	return runPermissionsList(nil, nil)
}

func runPermissionsReset(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	if a.Local == nil {
		return fmt.Errorf("statuses are managed by the desktop portal; use 'retouch permissions settings'")
	}

	resources := entity.AllResources()
	if len(args) == 1 {
		r, err := parseResource(args[0])
		if err != nil {
			return err
		}
		resources = []entity.Resource{r}
	}
	for _, r := range resources {
		if err := a.Local.Reset(a.Ctx(), r); err != nil {
			return err
		}
	}
	return runPermissionsList(nil, nil)
}

func parseResource(s string) (entity.Resource, error) {
	r, ok := entity.ParseResource(strings.ReplaceAll(strings.ToLower(s), "-", "_"))
	if !ok {
		return "", fmt.Errorf("unknown resource %q (use: %s)", s, strings.Join(resourceNames(), ", "))
	}
	return r, nil
}

func resourceNames() []string {
	return entity.ResourcesToStrings(entity.AllResources())
}
