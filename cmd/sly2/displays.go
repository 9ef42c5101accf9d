package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/animalstyletaco/Sly2Decomp/internal/render"
)

var flagDisplaysBackend string

var displaysCmd = &cobra.Command{
	Use:   "displays",
	Short: "List attached screens and their video modes",
	Long: `Queries the renderer backend for every attached screen, its placement,
and the video modes it supports.

Examples:
  sly2 displays
  sly2 displays --backend headless`,
	RunE: runDisplays,
}

func init() {
	displaysCmd.Flags().StringVar(&flagDisplaysBackend, "backend", "x11", "Renderer backend to query")
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// styled only decorates when stdout is a terminal; piped output stays plain.
func styled(style lipgloss.Style, s string) string {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return s
	}
	return style.Render(s)
}

func runDisplays(cmd *cobra.Command, args []string) error {
	mod, err := render.Create(flagDisplaysBackend)
	if err != nil {
		return err
	}
	cfg := defaultConfigForQuery()
	if err := mod.Init(&cfg); err != nil {
		return fmt.Errorf("backend %s init failed: %w", flagDisplaysBackend, err)
	}
	defer mod.Exit()

	screens, err := mod.Screens()
	if err != nil {
		return err
	}

	fmt.Println(styled(headerStyle, fmt.Sprintf("Screens (%s)", mod.Name())))
	fmt.Println()
	for _, s := range screens {
		fmt.Printf("  [%d] %s  %dx%d+%d+%d  current %dx%d@%dHz\n",
			s.Index, s.Name,
			s.Geometry.Width, s.Geometry.Height, s.Geometry.X, s.Geometry.Y,
			s.Mode.Width, s.Mode.Height, s.Mode.RefreshRate,
		)
		native := s.NativeMode()
		for _, m := range s.Modes {
			marker := "   "
			if m == native {
				marker = " * "
			}
			fmt.Println(styled(dimStyle, fmt.Sprintf("     %s%dx%d@%dHz",
				marker, m.Width, m.Height, m.RefreshRate)))
		}
	}
	fmt.Println()
	fmt.Println(styled(dimStyle, "  * native mode, used for fullscreen"))
	return nil
}
