package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/marco/cinema/internal/catalog"
)

func init() {
	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the library and print a summary",
		Args:  cobra.NoArgs,
		RunE:  runScan,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List movies in the library",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
	listCmd.Flags().StringP("category", "C", "", "Only list one category (my_videos, trailers)")
	listCmd.Flags().StringP("output", "o", "table", "Output format (table, yaml)")

	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search movie titles",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSearch,
	}

	rootCmd.AddCommand(scanCmd, listCmd, searchCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	c := loadCatalog(cmd.Context(), nil)
	defer c.Release()

	out := cmd.OutOrStdout()
	if c.Len() == 0 {
		fmt.Fprintln(out, "No videos found")
		return nil
	}

	fmt.Fprintf(out, "Found %d movies\n", c.Len())
	for _, cat := range catalog.Categories {
		fmt.Fprintf(out, "  %-10s %d\n", cat.String(), len(c.MovieList(cat)))
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	categoryFlag, _ := cmd.Flags().GetString("category")
	output, _ := cmd.Flags().GetString("output")

	if output != "table" && output != "yaml" {
		return fmt.Errorf("unknown output format %q (use table or yaml)", output)
	}

	var movies []*catalog.MovieEntry
	c := loadCatalog(cmd.Context(), nil)
	defer c.Release()

	if categoryFlag != "" {
		cat, err := catalog.ParseCategory(categoryFlag)
		if err != nil {
			return err
		}
		movies = c.MovieList(cat)
	} else {
		movies = c.Movies()
	}

	if output == "yaml" {
		return writeYAML(cmd.OutOrStdout(), movies)
	}
	return writeTable(cmd.OutOrStdout(), movies)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	c := loadCatalog(cmd.Context(), nil)
	defer c.Release()

	matches := c.Search(query)
	out := cmd.OutOrStdout()
	if len(matches) == 0 {
		fmt.Fprintf(out, "No movies match %q\n", query)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCORE\tTITLE\tCATEGORY\tPATH")
	for _, m := range matches {
		fmt.Fprintf(w, "%.2f\t%s\t%s\t%s\n", m.Score, m.Entry.Title, m.Entry.Category, m.Entry.Path)
	}
	return w.Flush()
}

func writeTable(out io.Writer, movies []*catalog.MovieEntry) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tCATEGORY\tFORMAT\t3D\tPOSTER\tPATH")
	for _, m := range movies {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\t%s\n",
			m.Title, m.Category, m.Format, m.Is3D, m.PosterSource, m.Path)
	}
	return w.Flush()
}

func writeYAML(out io.Writer, movies []*catalog.MovieEntry) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(movies); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}
