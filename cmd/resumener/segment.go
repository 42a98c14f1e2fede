package main

import (
	"io"
	"unicode/utf8"

	"github.com/fordcg/ai-interview-system/internal/segmenter"
)

type segmentOutput struct {
	Index  int    `json:"index"`
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Text   string `json:"text"`
}

func handleSegmentCommand(w io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	limit := *maxLen
	if limit <= 0 {
		limit = cfg.Segmenter.MaxLength
	}
	text, err := readInput()
	if err != nil {
		return err
	}
	if cfg.Segmenter.CleanText {
		text = segmenter.CleanText(text)
	}

	segments := segmenter.Segment(text, limit)
	out := make([]segmentOutput, 0, len(segments))
	offset := 0
	for i, s := range segments {
		n := utf8.RuneCountInString(s)
		out = append(out, segmentOutput{Index: i + 1, Offset: offset, Length: n, Text: s})
		offset += n + utf8.RuneCountInString(segmenter.Separator)
	}
	return writeJSON(w, out)
}
