package metrics

import (
	"fmt"
	"strings"
)

// FormatReport renders daily usage and health as plain text for the CLI
// and the bot's admin command.
func FormatReport(usage []DailyUsage, health SysHealth) string {
	var sb strings.Builder
	sb.WriteString("📊 Uso diario\n")
	if len(usage) == 0 {
		sb.WriteString("sin eventos\n")
	}
	for _, u := range usage {
		fmt.Fprintf(&sb, "%s  total=%d onboarding=%d comidas=%d exportaciones=%d\n",
			u.Date, u.Total, u.Onboardings, u.MealToggles, u.Exports)
	}
	sb.WriteString("\n🖥 Sistema\n")
	fmt.Fprintf(&sb, "memoria=%s sys=%s gc=%d goroutines=%d datos=%s",
		health.Alloc, health.Sys, health.NumGC, health.Goroutines, health.DataDiskSize)
	return sb.String()
}
