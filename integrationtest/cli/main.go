// Command cli is an interactive demo of the research chain. Type a topic and
// the chain runs end to end, printing each block as it is produced.
//
// With OPENAI_API_KEY set the chain calls OpenAI through the LangChainGo
// adapter; without it a canned offline model is used, so the demo always
// works.
//
// Commands:
//
//	prompt <topic>   print the first agent's full prompt without calling
//	mock <topic>     run the chain with MockCall only
//	<topic>          run the chain against the model
//	exit             quit
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/blockweave/weave"
	"github.com/blockweave/weave/integrationtest/research"
	"github.com/blockweave/weave/models"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorDim    = "\033[2m"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%sError: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}
}

func run() error {
	fixture := research.NewFixture()

	model, label, err := resolveModel(fixture)
	if err != nil {
		return err
	}
	fmt.Printf("%sresearch chain demo, model: %s%s\n", colorDim, label, colorReset)
	fmt.Println("type a topic, or: prompt <topic> | mock <topic> | exit")

	rl, err := readline.New(colorCyan + "topic> " + colorReset)
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or readline.ErrInterrupt
			return nil
		}
		line = strings.TrimSpace(line)

		switch {
		case line == "" || line == "exit":
			if line == "exit" {
				return nil
			}
		case strings.HasPrefix(line, "prompt "):
			showPrompt(fixture, strings.TrimPrefix(line, "prompt "))
		case strings.HasPrefix(line, "mock "):
			runMock(fixture, strings.TrimPrefix(line, "mock "))
		default:
			runChain(fixture, model, line)
		}
	}
}

// resolveModel returns the OpenAI-backed model when an API key is available
// and a canned offline model otherwise.
func resolveModel(f *research.Fixture) (weave.Model, string, error) {
	if os.Getenv("OPENAI_API_KEY") != "" {
		llm, err := openai.New()
		if err != nil {
			return nil, "", err
		}
		return models.NewLCG(llm).WithModelName("openai"), "openai", nil
	}
	return cannedModel(f), "canned (set OPENAI_API_KEY for real calls)", nil
}

// cannedModel answers every prompt with a well-formed fenced block for
// whichever output the prompt asks for.
func cannedModel(f *research.Fixture) weave.Model {
	questions := weave.MustBlock(f.ResearchQuestions,
		"1. What is known about this topic?\n"+
			"2. Which methods dominate the field?\n"+
			"3. What are the open problems?\n"+
			"4. Who are the affected stakeholders?\n"+
			"5. What would progress look like?")
	criteria := weave.MustBlock(f.SearchCriteria,
		"- The paper is peer reviewed.\n"+
			"- The paper addresses at least one research question.")

	return weave.ModelFunc(func(_ context.Context, prompt string) (string, error) {
		if strings.Contains(prompt, "criteria_block") {
			return criteria.Render("criteria_block") + "\n", nil
		}
		return questions.Render("rq_block") + "\n", nil
	})
}

func showPrompt(f *research.Fixture, topic string) {
	input, err := weave.NewBlock(f.Topic, topic)
	if err != nil {
		printErr(err)
		return
	}
	prompt, err := f.TopicToQuestions.FullPrompt(input)
	if err != nil {
		printErr(err)
		return
	}
	fmt.Println(prompt)
}

func runMock(f *research.Fixture, topic string) {
	input, err := weave.NewBlock(f.Topic, topic)
	if err != nil {
		printErr(err)
		return
	}
	out, err := f.TopicToQuestions.MockCall(input)
	if err != nil {
		printErr(err)
		return
	}
	printBlock("mock research questions", out[0])
}

func runChain(f *research.Fixture, m weave.Model, topic string) {
	questions, criteria, err := f.Run(context.Background(), m, topic)
	if err != nil {
		printErr(err)
		return
	}
	printBlock("research questions", questions)
	printBlock("search criteria", criteria)
}

func printBlock(label string, b weave.Block) {
	fmt.Printf("%s%s (%s)%s\n%s\n\n", colorGreen, label, b.Type().Name(), colorReset, b.Content())
}

func printErr(err error) {
	fmt.Printf("%s%v%s\n", colorYellow, err, colorReset)
}
