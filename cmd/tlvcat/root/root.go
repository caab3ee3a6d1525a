// Package root assembles the tlvcat command tree.
package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/tlvproto/tlv/cmd/tlvcat/root/dump"
	"github.com/tlvproto/tlv/cmd/tlvcat/root/encode"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tlvcat <command> [flags]",
		Short: "Inspect and build binary TLV documents",
		Long:  `tlvcat reads and writes the token-stream encoding implemented by the tlv package.`,
		Example: heredoc.Doc(`
			$ tlvcat dump doc.tlv
			$ tlvcat encode --str name=ada --int age=36 > doc.tlv
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(dump.NewDumpCmd())
	cmd.AddCommand(encode.NewEncodeCmd())

	return cmd
}
