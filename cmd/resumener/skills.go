package main

import (
	"io"

	"github.com/fordcg/ai-interview-system/internal/skills"
)

func handleSanitizeCommand(w io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	candidates, err := readSkills()
	if err != nil {
		return err
	}
	return writeJSON(w, skills.NewSanitizer(cfg.Skills.MaxSkillLength).Sanitize(candidates))
}

func handleClassifyCommand(w io.Writer) error {
	list, err := readSkills()
	if err != nil {
		return err
	}
	classifier := skills.NewClassifier()
	return writeJSON(w, struct {
		Display  any `json:"display"`
		Weighted any `json:"weighted"`
	}{
		Display:  classifier.Display(list),
		Weighted: classifier.WeightedSkills(list),
	})
}
