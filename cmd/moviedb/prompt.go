package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// prompter reads one trimmed answer per question from a line-oriented input.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// ask returns io.EOF once input is exhausted and no partial line remains.
func (p *prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			fmt.Fprintln(p.out)
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// askParsed repeats question until parse accepts the answer.
func askParsed[T any](p *prompter, pr *printer, question string, parse func(string) (T, error)) (T, error) {
	for {
		answer, err := p.ask(question)
		if err != nil {
			var zero T
			return zero, err
		}
		value, err := parse(answer)
		if err == nil {
			return value, nil
		}
		pr.fail("%s", describeError(err, ""))
	}
}

// askOptional is askParsed where a blank answer yields nil.
func askOptional[T any](p *prompter, pr *printer, question string, parse func(string) (T, error)) (*T, error) {
	for {
		answer, err := p.ask(question)
		if err != nil {
			return nil, err
		}
		if answer == "" {
			return nil, nil
		}
		value, err := parse(answer)
		if err == nil {
			return &value, nil
		}
		pr.fail("%s", describeError(err, ""))
	}
}
