// Package remove deletes tasks after a confirmation.
package remove

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/dayplan/pkg/app"
	"tableflip.dev/dayplan/pkg/printers"
)

// Prompt is the confirmation question.
const Prompt = "确定删除任务？"

type Remove struct {
	IDs     []string
	Planner *app.Planner
	// Yes skips the confirmation.
	Yes bool
	// In answers the confirmation; defaults to os.Stdin.
	In io.Reader
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Planner == nil {
		return errors.New("delete: no planner")
	}
	if len(n.IDs) == 0 {
		return errors.New("delete: no task id")
	}
	if err := n.Planner.Load(ctx); err != nil {
		return err
	}
	in := n.In
	if in == nil {
		in = os.Stdin
	}
	answers := bufio.NewScanner(in)

	pp := printers.PrettyPrint{ShowID: true}
	var failed error
	for _, id := range n.IDs {
		t, ok := n.Planner.Cache.Get(id)
		if !ok || !n.Planner.RequestDelete(id) {
			fmt.Fprintf(color.Error, "delete: no task %q\n", id)
			continue
		}
		if !n.Yes {
			pp.Tasks(t)
			_, _ = fmt.Fprintf(color.Output, "%s [取消/确认删除] (y/N) ", Prompt)
			if !confirmed(answers) {
				n.Planner.CancelDelete()
				_, _ = fmt.Fprintln(color.Output, "取消")
				continue
			}
		}
		if err := n.Planner.ConfirmDelete(ctx); err != nil {
			failed = err
			continue
		}
		_, _ = color.New(color.Faint).Fprintf(color.Output, "deleted %s\n", id)
	}
	return failed
}

func confirmed(s *bufio.Scanner) bool {
	if !s.Scan() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(s.Text())) {
	case "y", "yes", "确认", "确认删除":
		return true
	}
	return false
}
