// Package dump implements "tlvcat dump", a token-by-token trace of a TLV
// document.
package dump

import (
	"fmt"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tlvproto/tlv"
)

func NewDumpCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print one line per token in a TLV document",
		Long:  `Walks a TLV document token by token and prints its kind, nesting depth, and decoded value.`,
		Example: heredoc.Doc(`
			$ tlvcat dump doc.tlv
			$ tlvcat dump --verbose doc.tlv
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := uuid.New().String()
			if verbose {
				log.SetLevel(log.DebugLevel)
				log.Debug("starting dump", "run_id", runID, "file", args[0])
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			r, err := tlv.NewReader(data, nil)
			if err != nil {
				return fmt.Errorf("opening reader: %w", err)
			}

			for {
				tok, err := r.Next()
				if err == tlv.ErrReaderDone {
					if verbose {
						log.Debug("dump complete", "run_id", runID, "bytes_consumed", r.TotalBytesConsumed())
					}
					return nil
				}
				if err != nil {
					return fmt.Errorf("at byte %d: %w", r.TotalBytesConsumed(), err)
				}

				indent := strings.Repeat("  ", r.Depth())
				text, err := describeToken(tok)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s %s\n", indent, tok.Kind, text)

				if verbose {
					log.Debug("token", "run_id", runID, "kind", tok.Kind.String(), "depth", r.Depth(), "multisegment", tok.IsMultisegment())
				}
			}
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log a per-token trace to stderr")
	return cmd
}

func describeToken(tok tlv.Token) (string, error) {
	switch tok.Kind {
	case tlv.Null, tlv.True, tlv.False, tlv.BeginArray, tlv.EndArray, tlv.BeginObject, tlv.EndObject:
		return "", nil
	case tlv.PropertyName, tlv.String:
		buf := make([]byte, tok.Size)
		n, err := tok.String(buf)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%q", buf[:n]), nil
	case tlv.Number:
		if u, err := tok.Uint64(); err == nil {
			return fmt.Sprintf("%d", u), nil
		}
		i, err := tok.Int64()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d", i), nil
	default:
		return "", nil
	}
}
