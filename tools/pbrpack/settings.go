package main

import (
	"fmt"

	"github.com/depp/pbrpack/lib/getpath"
	"github.com/depp/pbrpack/lib/texture"

	"github.com/spf13/cobra"
)

var cmdDetect = cobra.Command{
	Use:   "detect <normal-map>",
	Short: "Print the normal map convention guessed from a file name.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), texture.DetectConvention(getpath.GetPath(args[0])))
		return nil
	},
}

var cmdSettings = cobra.Command{
	Use:   "settings",
	Short: "Print the saved settings.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := openSettings(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()
		all, err := st.All(cmd.Context())
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for _, p := range all {
			fmt.Fprintf(w, "%s=%s\n", p.Key, p.Value)
		}
		return nil
	},
}

var cmdReset = cobra.Command{
	Use:   "reset",
	Short: "Forget all saved settings.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := openSettings(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()
		return st.Clear(cmd.Context())
	},
}
