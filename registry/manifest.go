package registry

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/blockweave/weave"
)

// Manifest is a pipeline definition loaded from YAML: the block type
// vocabulary plus the agents declared over it.
//
// Manifest format:
//
//	block_types:
//	  - Topic
//	  - ResearchQuestions
//
//	agents:
//	  topic_to_research_questions:
//	    role: Expert scientific researcher
//	    summary: Creates 5 research questions related to the topic
//	    inputs:
//	      - name: topic_block
//	        type: Topic
//	        example: A topic for research here
//	    outputs:
//	      - name: rq_block
//	        type: ResearchQuestions
//	        example: |-
//	          1. RQ1
//	          2. RQ2
//	    algorithm:
//	      - Analyze topic_block
//	      - Create 5 research questions
//	      - Return the research questions as rq_block
//
// Every type referenced by an agent must appear under block_types; the loader
// fails otherwise rather than minting types implicitly.
type Manifest struct {
	// Registry holds the canonical block types declared by the manifest.
	Registry *Registry

	// Agents holds the declared agents, keyed by their manifest name.
	// Loaded agents have no model; attach one with WithModel before calling.
	Agents map[string]*weave.Agent
}

// manifestDoc is the raw YAML shape.
type manifestDoc struct {
	BlockTypes []string            `yaml:"block_types"`
	Agents     map[string]agentDoc `yaml:"agents"`
}

type agentDoc struct {
	Role      string    `yaml:"role"`
	Summary   string    `yaml:"summary"`
	Inputs    []slotDoc `yaml:"inputs"`
	Outputs   []slotDoc `yaml:"outputs"`
	Algorithm []string  `yaml:"algorithm"`
}

type slotDoc struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Example string `yaml:"example"`
}

// Load reads a pipeline manifest from r.
func Load(r io.Reader) (*Manifest, error) {
	var doc manifestDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}

	reg := New()
	for _, name := range doc.BlockTypes {
		if name == "" {
			return nil, fmt.Errorf("block_types: empty type name")
		}
		reg.Define(name)
	}

	agents := make(map[string]*weave.Agent, len(doc.Agents))
	for name, ad := range doc.Agents {
		agent, err := buildAgent(reg, name, ad)
		if err != nil {
			return nil, err
		}
		agents[name] = agent
	}

	return &Manifest{Registry: reg, Agents: agents}, nil
}

// LoadFile reads a pipeline manifest from a YAML file.
func LoadFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer f.Close()

	m, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return m, nil
}

func buildAgent(reg *Registry, name string, doc agentDoc) (*weave.Agent, error) {
	agent := weave.NewAgent(doc.Role, doc.Summary)

	seen := make(map[string]bool, len(doc.Inputs)+len(doc.Outputs))

	for i, s := range doc.Inputs {
		bt, err := resolveSlot(reg, name, "input", i, s, seen)
		if err != nil {
			return nil, err
		}
		agent.WithInput(s.Name, bt, s.Example)
	}

	for i, s := range doc.Outputs {
		bt, err := resolveSlot(reg, name, "output", i, s, seen)
		if err != nil {
			return nil, err
		}
		agent.WithOutput(s.Name, bt, s.Example)
	}

	if len(doc.Algorithm) > 0 {
		agent.WithAlgorithm(doc.Algorithm...)
	}

	// Surfaces declarations the builder rejects, such as example content
	// containing the fence markers.
	if err := agent.Err(); err != nil {
		return nil, fmt.Errorf("agent %q: %w", name, err)
	}

	return agent, nil
}

func resolveSlot(
	reg *Registry,
	agent, kind string,
	index int,
	s slotDoc,
	seen map[string]bool,
) (weave.BlockType, error) {
	if s.Name == "" {
		return weave.BlockType{}, fmt.Errorf("agent %q: %s %d has no name", agent, kind, index)
	}
	if s.Type == "" {
		return weave.BlockType{}, fmt.Errorf(
			"agent %q: %s %q has no block type", agent, kind, s.Name,
		)
	}
	if seen[s.Name] {
		return weave.BlockType{}, fmt.Errorf(
			"agent %q: duplicate block name %q", agent, s.Name,
		)
	}
	seen[s.Name] = true

	bt, ok := reg.Lookup(s.Type)
	if !ok {
		return weave.BlockType{}, fmt.Errorf(
			"agent %q: %s %q uses block type %q not declared under block_types",
			agent, kind, s.Name, s.Type,
		)
	}
	return bt, nil
}
