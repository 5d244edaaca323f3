package files

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/jacoelho/pm2http/internal/pathing"
	"github.com/jacoelho/pm2http/internal/pm/ast"
	"github.com/jacoelho/pm2http/internal/pm/config"
	"github.com/jacoelho/pm2http/internal/pm/convert"
	"github.com/jacoelho/pm2http/internal/pm/report"
	"github.com/jacoelho/pm2http/internal/restclient/model"
	"github.com/jacoelho/pm2http/internal/restclient/render"
)

const diffContextLines = 3

// Result is the outcome of one conversion run.
type Result struct {
	Summary  report.Summary
	Failures []convert.Failure
	// Rendered is the full output document, written or not.
	Rendered string
	// Diff is set when a diff was requested and the output would change.
	Diff    string
	Written bool
}

// Run converts the configured collection into a RestClient .http file.
// Per-request failures are reported in the result; only whole-run
// problems such as unreadable or unsupported input return an error.
func Run(cfg config.Config, logger *slog.Logger) (Result, error) {
	file, err := os.Open(cfg.InputFile)
	if err != nil {
		return Result{}, fmt.Errorf("open input file: %w", err)
	}
	defer file.Close()

	collection, err := ast.Parse(file)
	if err != nil {
		return Result{}, fmt.Errorf("parse collection: %w", err)
	}

	collectionID := collection.Info.ID().String()
	logger.Info("collection loaded",
		"name", collection.Info.Name,
		"id", collectionID,
		"version", collection.Info.Version(),
	)

	conversion := convert.Collection(collection)

	summary := report.Summary{
		CollectionName: collection.Info.Name,
		CollectionID:   collectionID,
		OutputPath:     cfg.OutputFile,
	}
	for _, outcome := range conversion.Outcomes {
		sourcePath := strings.Join(outcome.Node.FullPath(), "/")
		if !outcome.Result.Converted() {
			logger.Warn("request not converted", "path", sourcePath, "error", outcome.Result.Err)
		}
		summary.Add(report.RequestResult{
			SourcePath: sourcePath,
			Name:       outcome.Node.Name,
			Converted:  outcome.Result.Converted(),
			Issues:     qualifyIssues(sourcePath, outcome.Result.Issues),
		})
	}

	requests := make([]model.Request, 0, len(conversion.Requests))
	for _, request := range conversion.Requests {
		request.Body = rebaseBody(request.Body, cfg.InputFile, cfg.OutputFile)
		requests = append(requests, request)
	}

	result := Result{
		Summary:  summary,
		Failures: conversion.Failures,
		Rendered: render.Document(conversion.Variables, requests),
	}

	switch {
	case cfg.Diff:
		existing, err := readExisting(cfg.OutputFile)
		if err != nil {
			return Result{}, err
		}
		diff, err := unifiedDiff(filepath.Base(cfg.OutputFile), existing, result.Rendered)
		if err != nil {
			return Result{}, err
		}
		result.Diff = diff
	case cfg.DryRun:
		logger.Info("dry run, output not written", "output", cfg.OutputFile)
	default:
		if err := writeOutput(cfg.OutputFile, result.Rendered); err != nil {
			return Result{}, err
		}
		result.Written = true
		logger.Info("output written", "output", cfg.OutputFile, "requests", len(requests))
	}

	return result, nil
}

func qualifyIssues(sourcePath string, issues []report.Issue) []report.Issue {
	if len(issues) == 0 {
		return nil
	}

	qualified := make([]report.Issue, len(issues))
	for index := range issues {
		qualified[index] = issues[index]
		if strings.TrimSpace(qualified[index].Path) == "" {
			qualified[index].Path = sourcePath
		}
	}

	return qualified
}

// rebaseBody rewrites relative file references, which are relative to the
// collection file, so they resolve from the output file instead.
func rebaseBody(body model.Body, inputFile string, outputFile string) model.Body {
	switch b := body.(type) {
	case model.FileBody:
		b.Path = pathing.Rebase(b.Path, inputFile, outputFile)
		return b
	case model.FormDataBody:
		fields := make([]model.FormField, 0, len(b.Fields))
		for _, field := range b.Fields {
			if field.Value.IsFile() {
				files := make([]string, 0, len(field.Value.Files))
				for _, path := range field.Value.Files {
					files = append(files, pathing.Rebase(path, inputFile, outputFile))
				}
				field.Value = model.FileValue(files...)
			}
			fields = append(fields, field)
		}
		b.Fields = fields
		return b
	default:
		return body
	}
}

func readExisting(filename string) (string, error) {
	payload, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read existing output: %w", err)
	}
	return string(payload), nil
}

// unifiedDiff returns "" when original and modified are identical.
func unifiedDiff(filename, original, modified string) (string, error) {
	if original == modified {
		return "", nil
	}

	edits := udiff.Strings(original, modified)
	unified, err := udiff.ToUnified("a/"+filename, "b/"+filename, original, edits, diffContextLines)
	if err != nil {
		return "", fmt.Errorf("compute diff: %w", err)
	}

	return unified, nil
}

func writeOutput(filename string, content string) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}

	return nil
}
