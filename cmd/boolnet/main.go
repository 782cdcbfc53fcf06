// Command boolnet runs one analysis over a network definition file and
// prints the result, either as a styled table or as raw JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Ashar-LUMS/boolnet/pkg/dynamics"
	"github.com/Ashar-LUMS/boolnet/pkg/landscape"
	"github.com/Ashar-LUMS/boolnet/pkg/network"
	"github.com/Ashar-LUMS/boolnet/pkg/rules"
	"github.com/Ashar-LUMS/boolnet/pkg/state"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

func main() {
	networkPath := flag.String("network", "", "Network definition file (YAML or JSON)")
	mode := flag.String("mode", "rules", "Analysis mode: rules, threshold, or landscape")
	workers := flag.Int("workers", 1, "Search worker count")
	timeout := flag.Duration("timeout", 5*time.Minute, "Search timeout")
	asJSON := flag.Bool("json", false, "Emit the raw result as JSON")
	flag.Parse()

	if *networkPath == "" {
		fmt.Fprintln(os.Stderr, "usage: boolnet -network <file> [-mode rules|threshold|landscape]")
		os.Exit(2)
	}

	net, err := network.Load(*networkPath)
	if err != nil {
		fatal(err)
	}

	switch *mode {
	case "rules", "threshold":
		runSearch(net, *mode, *workers, *timeout, *asJSON)
	case "landscape":
		runLandscape(net, *asJSON)
	default:
		fatal(fmt.Errorf("unknown mode %q", *mode))
	}
}

func runSearch(net *network.Network, mode string, workers int, timeout time.Duration, asJSON bool) {
	codec, err := state.NewCodec(net.NodeIDs())
	if err != nil {
		fatal(err)
	}

	var updater dynamics.Updater
	switch mode {
	case "rules":
		rs, err := rules.Compile(net.RuleLines())
		if err != nil {
			fatal(err)
		}
		updater, err = dynamics.NewRuleUpdater(codec, rs, dynamics.UnruledHold)
		if err != nil {
			fatal(err)
		}
	case "threshold":
		updater, err = dynamics.NewThresholdUpdater(codec, net)
		if err != nil {
			fatal(err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	opts := dynamics.DefaultSearchOptions()
	opts.Workers = workers
	opts.Labels = net.Labels()

	result, err := dynamics.FindAttractors(ctx, updater, codec, opts)
	if err != nil {
		fatal(err)
	}

	if asJSON {
		emitJSON(result)
		return
	}
	printAnalysis(result, codec)
}

func runLandscape(net *network.Network, asJSON bool) {
	result, err := landscape.Solve(net, landscape.DefaultSolverOptions())
	if err != nil {
		fatal(err)
	}

	if asJSON {
		emitJSON(result)
		return
	}
	printLandscape(result)
}

func printAnalysis(result *dynamics.AnalysisResult, codec *state.Codec) {
	fmt.Println(titleStyle.Render("Attractor analysis"))
	fmt.Printf("%s %s\n", headerStyle.Render("nodes:"), valueStyle.Render(fmt.Sprintf("%v", result.Order)))
	fmt.Printf("%s %s\n", headerStyle.Render("explored:"),
		valueStyle.Render(fmt.Sprintf("%d of %d states", result.ExploredStateCount, result.TotalStateSpace)))

	for _, w := range result.Warnings {
		fmt.Println(warnStyle.Render("warning: " + w))
	}

	fmt.Println()
	fmt.Printf("%s  %-12s %-7s %-10s %-10s %s\n",
		headerStyle.Render("id"), headerStyle.Render("kind"), headerStyle.Render("period"),
		headerStyle.Render("basin"), headerStyle.Render("share"), headerStyle.Render("states"))
	for _, a := range result.Attractors {
		states := make([]string, len(a.States))
		for i, s := range a.States {
			states[i] = codec.Format(s)
		}
		fmt.Printf("%-3d %-12s %-7d %-10d %-10.4f %v\n",
			a.ID, a.Kind, a.Period, a.BasinSize, a.BasinShare, states)
	}
}

func printLandscape(result *landscape.Result) {
	fmt.Println(titleStyle.Render("Steady-state landscape"))
	status := "converged"
	if !result.Converged {
		status = warnStyle.Render("did not converge")
	}
	fmt.Printf("%s %s after %d iterations\n", headerStyle.Render("status:"), status, result.Iterations)
	fmt.Println()

	ids := append([]string(nil), result.Order...)
	sort.Strings(ids)
	fmt.Printf("%-20s %-12s %s\n",
		headerStyle.Render("node"), headerStyle.Render("p(active)"), headerStyle.Render("energy"))
	for _, id := range ids {
		fmt.Printf("%-20s %-12.6f %.6f\n", id, result.Probabilities[id], result.PotentialEnergy[id])
	}
}

func emitJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
