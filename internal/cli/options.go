// internal/cli/options.go
package cli

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"faidx/internal/output"
)

// Global holds flags shared by every subcommand.
type Global struct {
	Quiet   bool
	Verbose bool
}

// RegisterGlobal wires the persistent flags.
func RegisterGlobal(fs *pflag.FlagSet, g *Global) {
	fs.BoolVarP(&g.Quiet, "quiet", "q", false, "only log errors")
	fs.BoolVar(&g.Verbose, "verbose", false, "log index geometry and byte offsets")
}

// GetOptions configures `faidx get`.
type GetOptions struct {
	RegionsFile string
	RevComp     bool
	Format      string
	Width       int
	NoHeader    bool
	Build       bool
}

// RegisterGet wires `get` flags onto fs.
func RegisterGet(fs *pflag.FlagSet, o *GetOptions) {
	fs.StringVarP(&o.RegionsFile, "regions", "r", "", "file with one region per line")
	fs.BoolVarP(&o.RevComp, "reverse-complement", "i", false, "emit the reverse complement of every region")
	fs.StringVarP(&o.Format, "format", "f", output.FormatFASTA, "output format: fasta | text | json | jsonl")
	fs.IntVarP(&o.Width, "width", "w", output.DefaultWidth, "FASTA line width (0 = one line)")
	fs.BoolVar(&o.NoHeader, "no-header", false, "suppress the header row in text output")
	fs.BoolVar(&o.Build, "build", false, "build the .fai index first if it is missing")
}

// Validate checks flag values after parsing.
func (o GetOptions) Validate() error {
	switch o.Format {
	case output.FormatFASTA, output.FormatText, output.FormatJSON, output.FormatJSONL:
	default:
		return fmt.Errorf("invalid --format %q", o.Format)
	}
	if o.Width < 0 {
		return errors.New("--width must be >= 0")
	}
	return nil
}

// Mask modes accepted by --mode.
const (
	MaskSoft = "soft"
	MaskHard = "hard"
)

// MaskOptions configures `faidx mask`.
type MaskOptions struct {
	Mode        string
	RegionsFile string
	Build       bool
}

// RegisterMask wires `mask` flags onto fs.
func RegisterMask(fs *pflag.FlagSet, o *MaskOptions) {
	fs.StringVarP(&o.Mode, "mode", "m", MaskSoft, "masking mode: soft | hard")
	fs.StringVarP(&o.RegionsFile, "regions", "r", "", "file with one region per line")
	fs.BoolVar(&o.Build, "build", false, "build the .fai index first if it is missing")
}

// Validate checks flag values after parsing.
func (o MaskOptions) Validate() error {
	if o.Mode != MaskSoft && o.Mode != MaskHard {
		return fmt.Errorf("invalid --mode %q", o.Mode)
	}
	return nil
}

// IndexOptions configures `faidx index`.
type IndexOptions struct {
	Threads int
}

// RegisterIndex wires `index` flags onto fs.
func RegisterIndex(fs *pflag.FlagSet, o *IndexOptions) {
	fs.IntVarP(&o.Threads, "threads", "t", runtime.NumCPU(), "files indexed in parallel")
}

// Validate checks flag values after parsing.
func (o IndexOptions) Validate() error {
	if o.Threads < 1 {
		return errors.New("--threads must be >= 1")
	}
	return nil
}

// NamesOptions configures `faidx names`.
type NamesOptions struct {
	Lengths bool
}

// RegisterNames wires `names` flags onto fs.
func RegisterNames(fs *pflag.FlagSet, o *NamesOptions) {
	fs.BoolVarP(&o.Lengths, "lengths", "l", false, "print each record's length after its name")
}

// WriteArgs are the positionals of `faidx write FILE NAME START SEQ`.
type WriteArgs struct {
	File  string
	Name  string
	Start int
	Seq   string
}

// ParseWriteArgs validates the four `write` positionals. START is 0-based.
func ParseWriteArgs(args []string) (WriteArgs, error) {
	if len(args) != 4 {
		return WriteArgs{}, fmt.Errorf("want FILE NAME START SEQ, got %d arguments", len(args))
	}
	start, err := strconv.Atoi(strings.ReplaceAll(args[2], ",", ""))
	if err != nil {
		return WriteArgs{}, fmt.Errorf("bad START %q: %v", args[2], err)
	}
	if start < 0 {
		return WriteArgs{}, errors.New("START must be >= 0")
	}
	return WriteArgs{File: args[0], Name: args[1], Start: start, Seq: args[3]}, nil
}
