package config

import (
	"strconv"

	"github.com/taskbench/taskbench/internal/bferr"
)

// ParseGraphs parses a sequence of per-graph flag tokens, separated by the
// -and delimiter, into a slice of TaskGraph values with defaults applied.
// This is a hand-rolled scanner rather than flag.FlagSet because the -and
// chaining needs to reset to a fresh default graph mid-stream, something
// flag.FlagSet has no notion of.
func ParseGraphs(args []string) ([]TaskGraph, error) {
	var graphs []TaskGraph
	g := defaultGraph(0)

	i := 0
	next := func(flag string) (string, error) {
		i++
		if i >= len(args) {
			return "", &bferr.ConfigError{Flag: flag, Reason: "missing argument"}
		}
		return args[i], nil
	}

	for ; i < len(args); i++ {
		tok := args[i]
		switch tok {
		case "-and":
			applyDefaults(&g)
			graphs = append(graphs, g)
			g = defaultGraph(len(graphs))
			continue
		case "-steps":
			v, err := next(tok)
			if err != nil {
				return nil, err
			}
			n, err := parsePositiveInt(tok, v)
			if err != nil {
				return nil, err
			}
			g.Timesteps = n
		case "-width":
			v, err := next(tok)
			if err != nil {
				return nil, err
			}
			n, err := parsePositiveInt(tok, v)
			if err != nil {
				return nil, err
			}
			g.MaxWidth = n
		case "-type":
			v, err := next(tok)
			if err != nil {
				return nil, err
			}
			p, ok := parsePattern(v)
			if !ok {
				return nil, &bferr.ConfigError{Flag: tok, Reason: "unknown dependence type " + v}
			}
			g.Dependence = p
		case "-radix":
			v, err := next(tok)
			if err != nil {
				return nil, err
			}
			n, err := parseNonNegativeInt(tok, v)
			if err != nil {
				return nil, err
			}
			g.Radix = n
		case "-period":
			v, err := next(tok)
			if err != nil {
				return nil, err
			}
			n, err := parseNonNegativeInt(tok, v)
			if err != nil {
				return nil, err
			}
			g.Period = n
		case "-fraction":
			v, err := next(tok)
			if err != nil {
				return nil, err
			}
			f, err := parseFraction(tok, v)
			if err != nil {
				return nil, err
			}
			g.FractionConnected = f
		case "-kernel":
			v, err := next(tok)
			if err != nil {
				return nil, err
			}
			k, ok := parseKernel(v)
			if !ok {
				return nil, &bferr.ConfigError{Flag: tok, Reason: "unknown kernel " + v}
			}
			g.Kernel.Tag = k
		case "-iter":
			v, err := next(tok)
			if err != nil {
				return nil, err
			}
			n, err := parseNonNegativeInt(tok, v)
			if err != nil {
				return nil, err
			}
			g.Kernel.Iterations = int64(n)
		case "-output":
			v, err := next(tok)
			if err != nil {
				return nil, err
			}
			n, err := parseNonNegativeInt(tok, v)
			if err != nil {
				return nil, err
			}
			if n < 16 {
				return nil, &bferr.ConfigError{Flag: tok, Reason: "output size must be >= 16"}
			}
			g.OutputBytesPerTask = int64(n)
		case "-scratch":
			v, err := next(tok)
			if err != nil {
				return nil, err
			}
			n, err := parseNonNegativeInt(tok, v)
			if err != nil {
				return nil, err
			}
			if n%8 != 0 {
				return nil, &bferr.ConfigError{Flag: tok, Reason: "scratch size must be a multiple of 8"}
			}
			g.ScratchBytesPerTask = int64(n)
		case "-sample":
			v, err := next(tok)
			if err != nil {
				return nil, err
			}
			n, err := parseNonNegativeInt(tok, v)
			if err != nil {
				return nil, err
			}
			g.Kernel.Samples = int64(n)
		case "-imbalance":
			v, err := next(tok)
			if err != nil {
				return nil, err
			}
			f, err := parseFloat(tok, v)
			if err != nil {
				return nil, err
			}
			if f < 0 || f > 2 {
				return nil, &bferr.ConfigError{Flag: tok, Reason: "imbalance must be in [0,2]"}
			}
			g.Kernel.Imbalance = f
		case "-mem-fraction":
			v, err := next(tok)
			if err != nil {
				return nil, err
			}
			f, err := parseFraction(tok, v)
			if err != nil {
				return nil, err
			}
			g.Kernel.FractionMem = f
		case "-dist":
			v, err := next(tok)
			if err != nil {
				return nil, err
			}
			d, ok := parseDist(v)
			if !ok {
				return nil, &bferr.ConfigError{Flag: tok, Reason: "unknown distribution " + v}
			}
			g.Kernel.Dist.Tag = d
		case "-dist-max":
			v, err := next(tok)
			if err != nil {
				return nil, err
			}
			f, err := parseFloat(tok, v)
			if err != nil {
				return nil, err
			}
			g.Kernel.Dist.Max = f
		case "-dist-std":
			v, err := next(tok)
			if err != nil {
				return nil, err
			}
			f, err := parseFloat(tok, v)
			if err != nil {
				return nil, err
			}
			g.Kernel.Dist.Std = f
		case "-dist-alpha":
			v, err := next(tok)
			if err != nil {
				return nil, err
			}
			f, err := parseFloat(tok, v)
			if err != nil {
				return nil, err
			}
			g.Kernel.Dist.A = f
		case "-dist-beta":
			v, err := next(tok)
			if err != nil {
				return nil, err
			}
			f, err := parseFloat(tok, v)
			if err != nil {
				return nil, err
			}
			g.Kernel.Dist.B = f
		case "-field":
			v, err := next(tok)
			if err != nil {
				return nil, err
			}
			n, err := parsePositiveInt(tok, v)
			if err != nil {
				return nil, err
			}
			g.NBFields = n
		case "-output-case":
			v, err := next(tok)
			if err != nil {
				return nil, err
			}
			n, err := parseNonNegativeInt(tok, v)
			if err != nil {
				return nil, err
			}
			if n > 3 {
				return nil, &bferr.ConfigError{Flag: tok, Reason: "output-case must be in [0,3]"}
			}
			g.OutputCase = OutputCase(n)
		case "-output-mean":
			v, err := next(tok)
			if err != nil {
				return nil, err
			}
			f, err := parseFloat(tok, v)
			if err != nil {
				return nil, err
			}
			g.OutputMean = f
		case "-output-std":
			v, err := next(tok)
			if err != nil {
				return nil, err
			}
			f, err := parseFloat(tok, v)
			if err != nil {
				return nil, err
			}
			g.OutputStd = f
		case "-output-gamma-a":
			v, err := next(tok)
			if err != nil {
				return nil, err
			}
			f, err := parseFloat(tok, v)
			if err != nil {
				return nil, err
			}
			g.OutputGammaA = f
		case "-output-gamma-b":
			v, err := next(tok)
			if err != nil {
				return nil, err
			}
			f, err := parseFloat(tok, v)
			if err != nil {
				return nil, err
			}
			g.OutputGammaB = f
		default:
			return nil, &bferr.ConfigError{Flag: tok, Reason: "unrecognized flag"}
		}
	}

	applyDefaults(&g)
	graphs = append(graphs, g)
	return graphs, nil
}

// defaultGraph returns the default graph for slot index, before any flags
// are applied: empty kernel, trivial dependence, 16-byte uniform output.
func defaultGraph(index int) TaskGraph {
	return TaskGraph{
		GraphIndex:         index,
		Timesteps:          1,
		MaxWidth:           1,
		Dependence:         PatternTrivial,
		Kernel:             Kernel{Tag: KernelEmpty},
		OutputBytesPerTask: 16,
		OutputCase:         OutputCaseUniform,
	}
}

// applyDefaults fills in fields that default from other fields once the
// full flag set for one graph has been read.
func applyDefaults(g *TaskGraph) {
	if g.NBFields == 0 {
		g.NBFields = g.Timesteps
	}
	if g.Period == 0 && g.Dependence.RequiresPeriod() {
		g.Period = 3
	}
}

func parsePositiveInt(flag, v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, &bferr.ConfigError{Flag: flag, Reason: "expected a positive integer, got " + v}
	}
	return n, nil
}

func parseNonNegativeInt(flag, v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, &bferr.ConfigError{Flag: flag, Reason: "expected a non-negative integer, got " + v}
	}
	return n, nil
}

func parseFloat(flag, v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, &bferr.ConfigError{Flag: flag, Reason: "expected a number, got " + v}
	}
	return f, nil
}

func parseFraction(flag, v string) (float64, error) {
	f, err := parseFloat(flag, v)
	if err != nil {
		return 0, err
	}
	if f < 0 || f > 1 {
		return 0, &bferr.ConfigError{Flag: flag, Reason: "expected a value in [0,1], got " + v}
	}
	return f, nil
}

func parsePattern(name string) (Pattern, bool) {
	for p := PatternTrivial; p <= PatternRandomSpread; p++ {
		if p.String() == name {
			return p, true
		}
	}
	return 0, false
}

func parseKernel(name string) (KernelTag, bool) {
	for k := KernelEmpty; k <= KernelComputeMemory; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

func parseDist(name string) (DistTag, bool) {
	switch name {
	case "uniform":
		return DistUniform, true
	case "normal":
		return DistNormal, true
	case "gamma":
		return DistGamma, true
	case "cauchy":
		return DistCauchy, true
	default:
		return 0, false
	}
}
