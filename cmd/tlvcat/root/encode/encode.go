// Package encode implements "tlvcat encode", a small demo encoder that
// assembles a single top-level object from repeated flags.
package encode

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tlvproto/tlv"
)

type field struct {
	key   string
	value string
}

func NewEncodeCmd() *cobra.Command {
	var strs, ints, bools []string

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Build a TLV object from repeated flags and write it to stdout",
		Long:  `Assembles a single top-level object out of --str, --int, and --bool key=value pairs.`,
		Example: heredoc.Doc(`
			$ tlvcat encode --str name=ada --int age=36 --bool active=true > doc.tlv
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			strFields, err := parseFields(strs)
			if err != nil {
				return err
			}
			intFields, err := parseFields(ints)
			if err != nil {
				return err
			}
			boolFields, err := parseFields(bools)
			if err != nil {
				return err
			}

			pairCount := len(strFields) + len(intFields) + len(boolFields)
			dest := make([]byte, estimateSize(strFields, intFields, boolFields))
			w := tlv.NewWriter(dest, nil)

			if err := w.AppendBeginObject(pairCount); err != nil {
				return fmt.Errorf("run %s: %w", uuid.New().String(), err)
			}
			for _, f := range strFields {
				if err := appendProperty(w, f.key, func() error { return w.AppendString([]byte(f.value)) }); err != nil {
					return err
				}
			}
			for _, f := range intFields {
				n, err := strconv.ParseInt(f.value, 10, 64)
				if err != nil {
					return fmt.Errorf("--int %s: %w", f.key, err)
				}
				if err := appendProperty(w, f.key, func() error { return w.AppendInt64(n) }); err != nil {
					return err
				}
			}
			for _, f := range boolFields {
				b, err := strconv.ParseBool(f.value)
				if err != nil {
					return fmt.Errorf("--bool %s: %w", f.key, err)
				}
				if err := appendProperty(w, f.key, func() error { return w.AppendBool(b) }); err != nil {
					return err
				}
			}
			if err := w.AppendEndObject(); err != nil {
				return err
			}

			_, err = os.Stdout.Write(w.BytesUsedInDestination())
			return err
		},
	}

	cmd.Flags().StringArrayVar(&strs, "str", nil, "string property, as key=value")
	cmd.Flags().StringArrayVar(&ints, "int", nil, "integer property, as key=value")
	cmd.Flags().StringArrayVar(&bools, "bool", nil, "boolean property, as key=value")
	return cmd
}

func appendProperty(w *tlv.Writer, key string, appendValue func() error) error {
	if err := w.AppendPropertyName([]byte(key)); err != nil {
		return err
	}
	return appendValue()
}

func parseFields(raw []string) ([]field, error) {
	fields := make([]field, 0, len(raw))
	for _, r := range raw {
		key, value, ok := strings.Cut(r, "=")
		if !ok {
			return nil, fmt.Errorf("expected key=value, got %q", r)
		}
		fields = append(fields, field{key: key, value: value})
	}
	return fields, nil
}

// estimateSize bounds the single destination span generously enough that
// a non-chunked Writer never runs out of room: each property costs at most
// its key, its value, and a few header bytes.
func estimateSize(fieldSets ...[]field) int {
	total := 16
	for _, fields := range fieldSets {
		for _, f := range fields {
			total += len(f.key) + len(f.value) + 16
		}
	}
	return total
}
