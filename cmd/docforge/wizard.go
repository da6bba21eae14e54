package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-docforge/pkg/catalog"
	"github.com/goliatone/go-docforge/pkg/schema"
	"github.com/goliatone/go-docforge/pkg/session"
)

func wizardCommand() *cli.Command {
	return &cli.Command{
		Name:   "wizard",
		Usage:  "Fill a template interactively and write the rendered document",
		Action: runWizard,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "templates",
				Value:   "./templates",
				Usage:   "Directory holding template descriptor YAML files",
				Sources: cli.EnvVars("DOCFORGE_TEMPLATES"),
			},
			&cli.StringFlag{
				Name:  "template",
				Usage: "Template id to edit; prompts when omitted",
			},
			&cli.StringFlag{
				Name:  "title",
				Value: "Untitled document",
				Usage: "Title recorded on the produced document",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Value:   "document.html",
				Usage:   "Output path for the rendered markup",
			},
		},
	}
}

func runWizard(ctx context.Context, cmd *cli.Command) error {
	cat, err := catalog.NewFSCatalog(os.DirFS(cmd.String("templates")))
	if err != nil {
		return fmt.Errorf("load template catalog: %w", err)
	}

	desc, err := pickTemplate(ctx, cat, cmd.String("template"))
	if err != nil {
		return err
	}

	sess := session.New(desc, session.WithSynchronousRender())
	defer sess.Close()

	steps := sess.Steps()
	for sess.StepIndex() < len(steps) {
		step := steps[sess.StepIndex()]
		fmt.Printf("\n── %s (step %d of %d) ──\n", step.Title, sess.StepIndex()+1, len(steps))

		for _, id := range step.FieldIDs {
			field, ok := desc.Field(id)
			if !ok {
				continue
			}
			if err := askField(sess, field); err != nil {
				return err
			}
		}
		fmt.Printf("Completion: %d%%\n", sess.Score().Value)

		if sess.StepIndex() == len(steps)-1 {
			break
		}
		if !sess.Advance() {
			printErrors(sess.Errors())
		}
	}

	doc, err := sess.Submit(ctx, cmd.String("title"))
	if errors.Is(err, session.ErrValidationFailed) {
		printErrors(sess.Errors())
		return errors.New("document has validation errors")
	}
	if err != nil {
		return err
	}

	out := cmd.String("out")
	if err := os.WriteFile(out, []byte(doc.Content), 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	fmt.Printf("\nDocument written to %s\n", out)
	return nil
}

func pickTemplate(ctx context.Context, cat catalog.Templates, id string) (schema.TemplateDescriptor, error) {
	if id != "" {
		return cat.Template(ctx, id)
	}
	descs, err := cat.List(ctx)
	if err != nil {
		return schema.TemplateDescriptor{}, err
	}
	if len(descs) == 0 {
		return schema.TemplateDescriptor{}, errors.New("no templates available")
	}
	options := make([]string, len(descs))
	for i, desc := range descs {
		options[i] = desc.ID
	}
	var chosen string
	if err := survey.AskOne(&survey.Select{Message: "Template:", Options: options}, &chosen); err != nil {
		return schema.TemplateDescriptor{}, err
	}
	return cat.Template(ctx, chosen)
}

func askField(sess *session.Session, field schema.FieldSchema) error {
	message := field.Label + ":"
	current := sess.Values().Get(field.ID)

	var value schema.Value
	switch field.Type {
	case schema.FieldTypeTextarea:
		var text string
		if err := survey.AskOne(&survey.Multiline{Message: message, Default: current.Text()}, &text); err != nil {
			return err
		}
		value = schema.String(text)
	case schema.FieldTypeSelect, schema.FieldTypeRadio:
		var choice string
		prompt := &survey.Select{Message: message, Options: field.Options, Default: current.Text()}
		if err := survey.AskOne(prompt, &choice); err != nil {
			return err
		}
		value = schema.String(choice)
	case schema.FieldTypeCheckbox:
		var choices []string
		prompt := &survey.MultiSelect{Message: message, Options: field.Options, Default: current.Items()}
		if err := survey.AskOne(prompt, &choices); err != nil {
			return err
		}
		value = schema.List(choices...)
	default:
		var text string
		prompt := &survey.Input{Message: message, Default: current.Text(), Help: field.Placeholder}
		if err := survey.AskOne(prompt, &text); err != nil {
			return err
		}
		value = schema.String(text)
	}

	score, err := sess.SetValue(field.ID, value)
	if err != nil {
		return err
	}
	if len(score.JustCompleted) > 0 {
		fmt.Printf("Completion: %d%%\n", score.Value)
	}
	return nil
}

func printErrors(errs schema.FieldErrors) {
	for id, msg := range errs {
		fmt.Printf("  ✗ %s: %s\n", id, msg)
	}
}
