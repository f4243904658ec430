package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/retouch/internal/domain/entity"
)

// PermissionsRenderer renders permission states for `retouch permissions`.
type PermissionsRenderer struct {
	theme *Theme
}

// NewPermissionsRenderer creates a PermissionsRenderer.
func NewPermissionsRenderer(theme *Theme) *PermissionsRenderer {
	return &PermissionsRenderer{theme: theme}
}

// Render lists each state with its status badge and next action.
func (r *PermissionsRenderer) Render(backend string, states []entity.PermissionState) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\n  %s %s %s\n\n",
		iconStyle.Render(IconLock),
		r.theme.Title.Render("Permissions"),
		r.theme.Subtle.Render("("+backend+")"),
	))

	for _, s := range states {
		label := lipgloss.NewStyle().Width(18).Render(ResourceLabel(s.Resource))
		sb.WriteString(fmt.Sprintf("  %s %s  %s\n",
			label,
			r.theme.StatusBadge(s.Status),
			r.theme.Subtle.Render(ActionHint(s.Action)),
		))
	}
	return sb.String()
}

// RenderResult renders the outcome of a single request.
func (r *PermissionsRenderer) RenderResult(resource entity.Resource, action entity.Action, status entity.AuthorizationStatus) string {
	icon := r.theme.SuccessStyle.Render(IconCheck)
	if action != entity.ActionProceed {
		icon = r.theme.WarningStyle.Render(IconWarning)
	}
	return fmt.Sprintf("\n  %s %s %s  %s\n",
		icon,
		ResourceLabel(resource),
		r.theme.StatusBadge(status),
		r.theme.Subtle.Render(ActionHint(action)),
	)
}

// ActionHint describes what the user can do next.
func ActionHint(a entity.Action) string {
	switch a {
	case entity.ActionProceed:
		return "ready"
	case entity.ActionShowInAppPrompt, entity.ActionRequestOSAuthorization:
		return "will ask on first use"
	case entity.ActionRedirectToSettings:
		return "change it in system settings"
	default:
		return "unavailable"
	}
}
