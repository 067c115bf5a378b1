package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sanity-io/litter"

	"github.com/aliabb01/lineup/internal/model"
	"github.com/aliabb01/lineup/internal/reorder"
	"github.com/aliabb01/lineup/internal/store/jsonstore"
	"github.com/aliabb01/lineup/internal/tui"
	"github.com/aliabb01/lineup/internal/ui"
)

// Options tune behavior from root flags and config.
type Options struct {
	Store string // path to the list file; empty means ./lineup.json
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "ls":
		return doList(opt)

	case "add":
		return doAdd(a, opt)

	case "rm":
		if len(a) != 1 {
			ui.Fail("usage: lineup rm <index>")
			return 2
		}
		n, err := strconv.Atoi(a[0])
		if err != nil {
			ui.Fail("rm: not a number: " + a[0])
			return 2
		}
		return doRemove(n, opt)

	case "mv":
		if len(a) != 2 {
			ui.Fail("usage: lineup mv <from> <to>")
			return 2
		}
		from, err := strconv.Atoi(a[0])
		if err != nil {
			ui.Fail("mv: not a number: " + a[0])
			return 2
		}
		to, err := strconv.Atoi(a[1])
		if err != nil {
			ui.Fail("mv: not a number: " + a[1])
			return 2
		}
		return doMove(from, to, opt)

	case "up", "down":
		if len(a) != 1 {
			ui.Fail(fmt.Sprintf("usage: lineup %s <index>", cmd))
			return 2
		}
		n, err := strconv.Atoi(a[0])
		if err != nil {
			ui.Fail(cmd + ": not a number: " + a[0])
			return 2
		}
		return doStep(cmd, n, opt)

	case "edit":
		return doEdit(opt)

	case "dump":
		return doDump(opt)
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`lineup - reorderable line items

Usage:
  lineup <subcommand> [args]

Subcommands:
  add [-d desc] [-q qty] [-p price] <name...>   Add a new item
  ls                 List items with line totals
  mv <from> <to>     Move item from one 1-based position to another
  up <index>         Move item one position up
  down <index>       Move item one position down
  rm <index>         Remove item at 1-based index
  edit               Interactive editor (grab with g, drop with enter)
  dump               Dump the raw store for debugging

Examples:
  lineup add -q 3 -p 4.99 "Widget"
  lineup ls
  lineup mv 3 1
  lineup up 2
`)
}

// storePath resolves the list file for this invocation.
func storePath(opt Options) (string, error) {
	if opt.Store != "" {
		return opt.Store, nil
	}
	return jsonstore.DefaultPath()
}

func loadItems(opt Options) ([]model.Item, string, int) {
	p, err := storePath(opt)
	if err != nil {
		ui.Fail("store: " + err.Error())
		return nil, "", 1
	}
	items, err := jsonstore.LoadFrom(p)
	if err != nil {
		ui.Fail("load: " + err.Error())
		return nil, "", 1
	}
	return items, p, 0
}

// -------------- subcommand impls ----------------

func doList(opt Options) int {
	items, _, code := loadItems(opt)
	if code != 0 {
		return code
	}
	ui.Panel(renderLines(items))
	return 0
}

func doAdd(args []string, opt Options) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	desc := fs.String("d", "", "description")
	qty := fs.Int("q", 1, "quantity")
	price := fs.String("p", "0", "unit price, e.g. 4.99")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	name := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if name == "" {
		ui.Fail("usage: lineup add [-d desc] [-q qty] [-p price] <name...>")
		return 2
	}
	cents, err := model.ParseCents(*price)
	if err != nil {
		ui.Fail("add: " + err.Error())
		return 2
	}
	it := model.New(name, *desc, *qty, cents)
	if err := it.Validate(); err != nil {
		ui.Fail("add: " + err.Error())
		return 2
	}

	items, p, code := loadItems(opt)
	if code != 0 {
		return code
	}
	items = append(items, it)
	if err := jsonstore.SaveTo(p, items); err != nil {
		ui.Fail("save: " + err.Error())
		return 1
	}
	ui.OK("added")
	return 0
}

func doRemove(userIndex int, opt Options) int {
	items, p, code := loadItems(opt)
	if code != 0 {
		return code
	}
	if userIndex < 1 || userIndex > len(items) {
		ui.Fail(fmt.Sprintf("index out of range: have %d, got %d", len(items), userIndex))
		fmt.Fprintln(os.Stderr, ui.C("\033[90m", "Hint: run `lineup ls` to see valid indexes"))
		return 2
	}
	idx := userIndex - 1
	items = append(items[:idx], items[idx+1:]...)
	if err := jsonstore.SaveTo(p, items); err != nil {
		ui.Fail("save: " + err.Error())
		return 1
	}
	ui.OK("removed")
	return 0
}

func doMove(from, to int, opt Options) int {
	items, p, code := loadItems(opt)
	if code != 0 {
		return code
	}
	next, err := reorder.Move(items, from-1, to-1)
	if err != nil {
		ui.Fail("mv: " + err.Error())
		fmt.Fprintln(os.Stderr, ui.C("\033[90m", "Hint: run `lineup ls` to see valid indexes"))
		return 2
	}
	if err := jsonstore.SaveTo(p, next); err != nil {
		ui.Fail("save: " + err.Error())
		return 1
	}
	ui.OK(fmt.Sprintf("moved %d → %d", from, to))
	return 0
}

func doStep(dir string, userIndex int, opt Options) int {
	items, p, code := loadItems(opt)
	if code != 0 {
		return code
	}
	if userIndex < 1 || userIndex > len(items) {
		ui.Fail(fmt.Sprintf("index out of range: have %d, got %d", len(items), userIndex))
		return 2
	}
	var next []model.Item
	var err error
	if dir == "up" {
		next, err = reorder.MoveUp(items, userIndex-1)
	} else {
		next, err = reorder.MoveDown(items, userIndex-1)
	}
	if err != nil {
		ui.Fail(dir + ": " + err.Error())
		return 2
	}
	if err := jsonstore.SaveTo(p, next); err != nil {
		ui.Fail("save: " + err.Error())
		return 1
	}
	ui.OK(dir)
	return 0
}

func doEdit(opt Options) int {
	items, p, code := loadItems(opt)
	if code != 0 {
		return code
	}
	err := tui.Run(items, func(out []model.Item) error {
		return jsonstore.SaveTo(p, out)
	})
	if err != nil {
		ui.Fail("edit: " + err.Error())
		return 1
	}
	return 0
}

func doDump(opt Options) int {
	items, _, code := loadItems(opt)
	if code != 0 {
		return code
	}
	fmt.Println(litter.Sdump(items))
	return 0
}

// -------------- rendering helpers --------------

// renderLines builds the ls panel body: header, one line per item with the
// computed total, a rule and the grand total.
func renderLines(items []model.Item) []string {
	t := ui.Current()

	var lines []string
	lines = append(lines, ui.C(t.Title, "Line items"))
	lines = append(lines, "")

	if len(items) == 0 {
		lines = append(lines, ui.C(t.Muted, "no items"))
		return lines
	}

	var grand int64
	for i, it := range items {
		grand += it.TotalCents()
		name := it.Name
		if len(name) > 24 {
			name = name[:21] + "..."
		}
		lines = append(lines, fmt.Sprintf("%2d. %-24s %4d x %9s = %10s",
			i+1, name, it.Quantity,
			model.FormatCents(it.UnitCents), model.FormatCents(it.TotalCents())))
		if it.Description != "" {
			lines = append(lines, ui.C(t.Muted, "    "+it.Description))
		}
	}
	lines = append(lines, ui.Rule(58))
	lines = append(lines, fmt.Sprintf("%-31s %s %10s",
		fmt.Sprintf("%d items", len(items)),
		ui.C(t.Accent, "Total"), model.FormatCents(grand)))
	return lines
}
