package ai

import (
	"fmt"
	"strings"

	"tableflip.dev/dayplan/pkg/task"
)

const (
	parseSystem   = "你是一个专业的日程解析助手，只输出JSON格式。"
	suggestSystem = "你是一个清新、治愈、温柔的日程小助手，语气像宫崎骏电影里的角色。"

	// SuggestFallback is shown when the suggestion call fails.
	SuggestFallback = "接下来30分钟有空档，喝杯温水休息一下吧？☕"
	// SuggestEmpty is shown when the model answers with nothing.
	SuggestEmpty = "保持专注，也要记得给心灵留白 ✨"

	// DefaultImageModel renders journal illustrations.
	DefaultImageModel = "gemini-2.5-flash-image"
)

func parsePrompt(input, refDate string) string {
	return fmt.Sprintf(`将以下自然语言日程描述解析为JSON对象，只需返回JSON。参考日期: %s。输入: "%s"。格式: {"title": string, "date": "YYYY-MM-DD", "startTime": "HH:mm", "endTime": "HH:mm", "category": "工作/学习/健康/生活", "priority": 1-3}`, refDate, input)
}

func suggestPrompt(tasks []task.Task) string {
	parts := make([]string, 0, len(tasks))
	for _, t := range tasks {
		parts = append(parts, fmt.Sprintf("%s-%s: %s", t.StartTime, t.EndTime, t.Title))
	}
	return fmt.Sprintf("基于目前的日程: [%s]，作为一位贴心的私人助理，给出一个极简的建议（20字以内）。", strings.Join(parts, ", "))
}

func journalPrompt(tasks []task.Task, mood string) string {
	if mood == "" {
		mood = "peaceful"
	}
	var done []string
	for _, t := range tasks {
		if t.Completed {
			done = append(done, t.Title)
		}
	}
	achievements := strings.Join(done, ", ")
	if achievements == "" {
		achievements = "started today"
	}
	return fmt.Sprintf("A aesthetic watercolor illustration of a daily journal. Mood: %s. Achievements: %s. Ghibli style.", mood, achievements)
}
