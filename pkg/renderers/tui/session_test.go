package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-reportgen/pkg/app"
	"github.com/goliatone/go-reportgen/pkg/config"
	"github.com/goliatone/go-reportgen/pkg/render"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	textAreas    []string
	infoMessages []string
	prompts      []string
	inputPos     int
	selectPos    int
	confirmPos   int
	textPos      int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	s.prompts = append(s.prompts, "input:"+cfg.Message+"|"+cfg.Help)
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	s.prompts = append(s.prompts, "confirm:"+cfg.Message)
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	s.prompts = append(s.prompts, "select:"+cfg.Message)
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	s.prompts = append(s.prompts, "textarea:"+cfg.Message+"|"+cfg.Default)
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

type mapLoader map[string]config.Config

func (m mapLoader) Load(_ context.Context, src config.Source) (config.Config, error) {
	cfg, ok := m[src.Location()]
	if !ok {
		return config.Config{}, errors.New("not found")
	}
	return cfg, nil
}

func weekly(done, next string) config.Config {
	return config.Config{Sections: []config.SectionConfig{
		{SectionID: "done", Title: done, Fields: []config.FieldConfig{
			{FieldID: "shipped", Label: "Shipped", Type: config.FieldKindTextArea},
			{FieldID: "owner", Label: "Owner", Type: config.FieldKindInput, Hint: "Who <em>owns</em> it"},
		}},
		{SectionID: "next", Title: next, Fields: []config.FieldConfig{
			{FieldID: "plan", Label: "Plan", Type: config.FieldKindTextArea},
		}},
	}}
}

func newApp(t *testing.T) *app.App {
	t.Helper()
	a, err := app.New(
		app.WithLoader(mapLoader{"en": weekly("Done", "Next"), "fr": weekly("Fait", "Ensuite")}),
		app.WithCatalog(config.NewCatalog(map[string]config.Source{
			"en": config.SourceFromFS("en"),
			"fr": config.SourceFromFS("fr"),
		})),
	)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	if err := a.Load(context.Background(), "en"); err != nil {
		t.Fatalf("load: %v", err)
	}
	return a
}

func TestSession_WalksSectionsAndFields(t *testing.T) {
	driver := &stubDriver{
		confirm:   []bool{true, false},
		textAreas: []string{"login page"},
		inputs:    []string{"ana"},
	}
	a := newApp(t)

	report, err := NewSession(WithPromptDriver(driver)).Run(context.Background(), a)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := "1. Done\n\nShipped: \n login page\nOwner: \n ana\n\n"
	if diff := cmp.Diff(want, report); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
	wantPrompts := []string{
		`confirm:Include section "Done"?`,
		"textarea:Shipped|",
		"input:Owner|Who owns it",
		`confirm:Include section "Next"?`,
	}
	if diff := cmp.Diff(wantPrompts, driver.prompts); diff != "" {
		t.Fatalf("prompt mismatch (-want +got):\n%s", diff)
	}
	if driver.infoMessages[len(driver.infoMessages)-1] != want {
		t.Fatalf("expected report printed last, got %q", driver.infoMessages)
	}

	view, err := a.View()
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if view.Sections[1].Included {
		t.Fatalf("expected next section to be excluded")
	}
}

func TestSession_LanguagePrompt(t *testing.T) {
	translator, err := render.NewBundleTranslator(nil)
	if err != nil {
		t.Fatalf("translator: %v", err)
	}
	driver := &stubDriver{
		selectIdx: []int{1},
		confirm:   []bool{false, false},
	}
	a := newApp(t)

	session := NewSession(
		WithPromptDriver(driver),
		WithLanguagePrompt(true),
		WithRenderOptions(render.RenderOptions{Translator: translator}),
		WithTheme(Theme{SectionPrefix: "## "}),
	)
	report, err := session.Run(context.Background(), a)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report != "" {
		t.Fatalf("expected empty report with every section excluded, got %q", report)
	}
	if a.Language() != "fr" {
		t.Fatalf("expected language switch, got %q", a.Language())
	}
	if driver.prompts[0] != "select:Language" {
		t.Fatalf("unexpected first prompt %q", driver.prompts[0])
	}
	if driver.prompts[1] != "confirm:Inclure la section « Fait » ?" {
		t.Fatalf("expected french include prompt, got %q", driver.prompts[1])
	}
	if driver.infoMessages[0] != "## Fait" {
		t.Fatalf("expected themed section heading, got %q", driver.infoMessages[0])
	}
}

func TestSession_StopsOnDriverError(t *testing.T) {
	driver := &stubDriver{confirm: []bool{true}}
	_, err := NewSession(WithPromptDriver(driver)).Run(context.Background(), newApp(t))
	if err == nil || !strings.Contains(err.Error(), "no textarea scripted") {
		t.Fatalf("expected driver error, got %v", err)
	}
}

func TestSession_NilEditor(t *testing.T) {
	if _, err := NewSession(WithPromptDriver(&stubDriver{})).Run(context.Background(), nil); !errors.Is(err, ErrNoEditor) {
		t.Fatalf("expected ErrNoEditor, got %v", err)
	}
}

func TestRenderer_Outline(t *testing.T) {
	a := newApp(t)
	if _, err := a.SetValue("done", "shipped", "a\nb"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := a.SetIncluded("next", false); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	view, err := a.View()
	if err != nil {
		t.Fatalf("view: %v", err)
	}

	out, err := Renderer{}.Render(context.Background(), view, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "Weekly report [en]\n\n" +
		"[x] Done\n    Shipped: a\n             b\n    Owner:\n" +
		"[ ] Next\n    Plan:\n" +
		"\nReport:\n" +
		"1. Done\n\nShipped: \n a\nb\nOwner: \n \n\n"
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("outline mismatch (-want +got):\n%s", diff)
	}
}

func TestPlainHint(t *testing.T) {
	if got := plainHint("Fish &amp; <b>chips</b>"); got != "Fish & chips" {
		t.Fatalf("unexpected plain hint %q", got)
	}
}
