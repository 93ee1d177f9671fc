package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/generativelanguage/v1beta"
	"google.golang.org/api/option"

	"tableflip.dev/dayplan/pkg/task"
)

type gemini struct {
	svc *generativelanguage.Service
}

// newGemini connects to the Generative Language API. endpoint overrides the
// default host when set.
func newGemini(ctx context.Context, key, endpoint string) (*gemini, error) {
	opts := []option.ClientOption{option.WithAPIKey(key)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(strings.TrimRight(endpoint, "/")+"/"))
	}
	svc, err := generativelanguage.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("ai: gemini client: %w", err)
	}
	return &gemini{svc: svc}, nil
}

func parsedSchema() *generativelanguage.Schema {
	categories := make([]string, 0, 4)
	for _, c := range task.AllCategories() {
		categories = append(categories, string(c))
	}
	return &generativelanguage.Schema{
		Type: "OBJECT",
		Properties: map[string]generativelanguage.Schema{
			"title":     {Type: "STRING", Description: "任务标题"},
			"date":      {Type: "STRING", Description: "日期 YYYY-MM-DD"},
			"startTime": {Type: "STRING", Description: "开始时间 HH:mm"},
			"endTime":   {Type: "STRING", Description: "结束时间 HH:mm"},
			"category":  {Type: "STRING", Enum: categories, Description: "工作, 学习, 健康, 生活之一"},
			"priority":  {Type: "INTEGER", Description: "1-3 优先级"},
		},
		Required: []string{"title"},
	}
}

func (g *gemini) generate(ctx context.Context, req request) (reply, error) {
	body := &generativelanguage.GenerateContentRequest{
		Contents: []*generativelanguage.Content{{
			Role:  "user",
			Parts: []*generativelanguage.Part{{Text: req.prompt}},
		}},
	}
	if req.system != "" {
		body.SystemInstruction = &generativelanguage.Content{
			Parts: []*generativelanguage.Part{{Text: req.system}},
		}
	}
	if req.json {
		body.GenerationConfig = &generativelanguage.GenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   parsedSchema(),
		}
	}

	model := req.model
	if !strings.HasPrefix(model, "models/") {
		model = "models/" + model
	}
	resp, err := g.svc.Models.GenerateContent(model, body).Context(ctx).Do()
	if err != nil {
		return reply{}, fmt.Errorf("gemini %s: %w", req.model, err)
	}

	var r reply
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil {
				continue
			}
			text.WriteString(part.Text)
			if part.InlineData != nil {
				r.images = append(r.images, image{mimeType: part.InlineData.MimeType, data: part.InlineData.Data})
			}
		}
		// First candidate only.
		break
	}
	r.text = text.String()
	return r, nil
}
