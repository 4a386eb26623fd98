package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/DeafMist/trt-intel/internal/spreadsheet"
)

func templateCMD() *cobra.Command {
	var out string

	var cmd = &cobra.Command{
		Use:   "template",
		Short: "Write the bulk upload template workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			if err := spreadsheet.WriteTemplate(f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "template written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "TRT_Intelligence_Bulk_Upload_Template.xlsx", "output path")

	return cmd
}

func convertCMD() *cobra.Command {
	var input, output string

	var cmd = &cobra.Command{
		Use:   "convert",
		Short: "Convert a bulk upload workbook into a JSON array of news items",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := readNews(input, time.Now())
			if err != nil {
				return err
			}

			if output == "" {
				return writeIndented(cmd.OutOrStdout(), items)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := writeIndented(f, items); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d items written to %s\n", len(items), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "bulk upload workbook (.xlsx)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "JSON output path (default stdout)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
