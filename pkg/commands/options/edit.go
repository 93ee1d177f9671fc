package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/dayplan/pkg/task"
)

// EditOptions holds the field flags of edit. Only flags that were set make
// it into the patch.
type EditOptions struct {
	Title     string
	Start     string
	End       string
	Category  string
	Priority  int
	Review    string
	Date      string
	Completed bool
}

func AddEditArgs(cmd *cobra.Command, o *EditOptions) {
	cmd.Flags().StringVar(&o.Title, "title", "", "New title.")
	cmd.Flags().StringVar(&o.Start, "start", "", "New start time, HH:MM.")
	cmd.Flags().StringVar(&o.End, "end", "", "New end time, HH:MM.")
	cmd.Flags().StringVar(&o.Category, "category", "", "New category: 工作, 学习, 健康, 生活 or work, study, health, life.")
	cmd.Flags().IntVar(&o.Priority, "priority", 2, "New priority, 1 to 3.")
	cmd.Flags().StringVar(&o.Review, "review", "", "Review note.")
	cmd.Flags().StringVar(&o.Date, "date", "", "Move to another day, YYYY-MM-DD.")
	cmd.Flags().BoolVar(&o.Completed, "completed", false, "Set the completion state.")
}

// Patch builds the change from the flags the user set.
func (o *EditOptions) Patch(cmd *cobra.Command) (task.Patch, error) {
	var p task.Patch
	set := cmd.Flags().Changed
	if set("title") {
		p.Title = &o.Title
	}
	if set("start") {
		p.StartTime = &o.Start
	}
	if set("end") {
		p.EndTime = &o.End
	}
	if set("category") {
		c, err := task.ParseCategory(o.Category)
		if err != nil {
			return p, err
		}
		p.Category = &c
	}
	if set("priority") {
		pr := task.Priority(o.Priority).Clamp()
		p.Priority = &pr
	}
	if set("review") {
		p.Review = &o.Review
	}
	if set("date") {
		p.Date = &o.Date
	}
	if set("completed") {
		p.Completed = &o.Completed
	}
	return p, nil
}
