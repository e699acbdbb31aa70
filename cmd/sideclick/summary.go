package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/vedantwpatil/sideclick/internal/config"
	"github.com/vedantwpatil/sideclick/internal/sequencer"
)

func printBanner(w io.Writer, cfg *config.ClickConfig, s config.Settings) {
	color.New(color.FgCyan, color.Bold).Fprintf(w, "sideclick %s\n", version)
	fmt.Fprintf(w, "Hold mouse button %d to click, press %s to quit.\n\n",
		s.TriggerButton, strings.ToUpper(s.ExitKey))
	printPoints(w, cfg)
}

func printPoints(w io.Writer, cfg *config.ClickConfig) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "X", "Y", "Pre", "Post"})
	for i, p := range cfg.Points {
		table.Append([]string{
			strconv.Itoa(i),
			strconv.Itoa(p.X),
			strconv.Itoa(p.Y),
			p.PreDelay.String(),
			p.PostDelay.String(),
		})
	}
	table.SetFooter([]string{"round", "", "", cfg.RoundStartDelay.String(), cfg.RoundEndDelay.String()})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT})
	table.SetBorder(false)
	table.Render()
}

func printSummary(w io.Writer, snap sequencer.Snapshot) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Rounds", "Interrupted", "Clicks", "Failures"})
	row := []string{
		strconv.FormatInt(snap.Rounds, 10),
		strconv.FormatInt(snap.Interrupted, 10),
		strconv.FormatInt(snap.Clicks, 10),
		strconv.FormatInt(snap.Failures, 10),
	}
	if snap.Failures > 0 {
		red := tablewriter.Colors{tablewriter.Normal, tablewriter.FgRedColor}
		table.Rich(row, []tablewriter.Colors{red, red, red, red})
	} else {
		table.Append(row)
	}
	table.SetBorder(false)
	table.Render()
}
