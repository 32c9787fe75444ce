package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/francescodifilippo/readmet"
)

const (
	bytesPerMB = 1048576.0
	barWidth   = 70
)

type tagReport struct {
	Category    string   `json:"type"`
	ID          *int     `json:"id,omitempty"`
	GapType     string   `json:"gap_type,omitempty"`
	Reference   string   `json:"reference,omitempty"`
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Value       any      `json:"value"`
	ValueMB     *float64 `json:"value_mb,omitempty"`
	ValueDate   string   `json:"value_date,omitempty"`
}

type gapReport struct {
	Start  uint32  `json:"start"`
	End    uint32  `json:"end"`
	Size   uint32  `json:"size"`
	SizeMB float64 `json:"size_mb"`
}

type gapsReport struct {
	Count       int         `json:"count"`
	TotalSize   uint32      `json:"total_size"`
	TotalSizeMB float64     `json:"total_size_mb"`
	Percentage  float64     `json:"percentage"`
	Details     []gapReport `json:"details"`
}

type vizReport struct {
	TotalSize    uint32     `json:"total_size"`
	TotalSizeMB  float64    `json:"total_size_mb"`
	Downloaded   uint32     `json:"downloaded"`
	DownloadedMB float64    `json:"downloaded_mb"`
	Percentage   float64    `json:"percentage"`
	Gaps         gapsReport `json:"gaps"`
	Bar          []int      `json:"bar"`
}

type fileReport struct {
	File          string      `json:"file,omitempty"`
	FormatVersion string      `json:"format_version"`
	Hash          string      `json:"ed2k_hash"`
	NumTags       uint32      `json:"num_tags"`
	Tags          []tagReport `json:"tags,omitempty"`
	Visualization *vizReport  `json:"visualization,omitempty"`
}

func report(w io.Writer, p *readmet.PartMet, path string, opts *options) error {
	if key, value, ok := singleField(p, opts); ok {
		if opts.jsonOutput {
			obj := map[string]any{key: value}
			if path != "" {
				obj["file"] = path
			}
			return writeJSON(w, obj)
		}
		if value == nil {
			return nil
		}
		_, err := fmt.Fprintln(w, value)
		return err
	}
	if opts.jsonOutput {
		return writeJSON(w, buildReport(p, path, opts))
	}
	return printReport(w, p, path, opts)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	return enc.Encode(v)
}

func buildReport(p *readmet.PartMet, path string, opts *options) fileReport {
	result := fileReport{
		File:          path,
		FormatVersion: p.Header.Version.String(),
		Hash:          p.Hash.String(),
		NumTags:       p.TagCount,
	}
	for _, tag := range p.Tags {
		if showCategory(tag.Category(), opts) {
			result.Tags = append(result.Tags, tagToReport(tag))
		}
	}
	if opts.visualize {
		viz := buildViz(p)
		result.Visualization = &viz
	}
	return result
}

func showCategory(category readmet.TagCategory, opts *options) bool {
	switch category {
	case readmet.CategorySpecial:
		return opts.showSpecial
	case readmet.CategoryGap:
		return opts.showGap
	case readmet.CategoryStandard:
		return opts.showStandard
	}
	return opts.showUnknown
}

func tagToReport(tag *readmet.Tag) tagReport {
	result := tagReport{Category: tag.Category().String()}
	switch tag.Category() {
	case readmet.CategorySpecial:
		id, _ := tag.SpecialID()
		idInt := int(id)
		result.ID = &idInt
		result.Description = readmet.SpecialTagDescription(id, tag.IntValue)
		if tag.Type == readmet.TagInteger {
			if id == readmet.FieldFileSize || id == readmet.FieldDownloaded {
				mb := float64(tag.IntValue) / bytesPerMB
				result.ValueMB = &mb
			} else if id == readmet.FieldLastSeen {
				result.ValueDate = formatTimestamp(tag.IntValue)
			}
		}
	case readmet.CategoryGap:
		sentinel, ref, _ := tag.GapReference()
		if sentinel == readmet.GapStart {
			result.GapType = "start"
		} else {
			result.GapType = "end"
		}
		result.Reference = ref
	default:
		result.Name = string(tag.Name)
		result.Description = readmet.StandardTagDescription(string(tag.Name))
	}
	if tag.Type == readmet.TagInteger {
		result.Value = tag.IntValue
	} else {
		result.Value = tag.StringValue
	}
	return result
}

func printReport(w io.Writer, p *readmet.PartMet, path string, opts *options) error {
	if path != "" {
		fmt.Fprintf(w, "File: %s\n", path)
	}
	fmt.Fprintf(w, ".part.met file version: %s\n", p.Header.Version)
	fmt.Fprintf(w, "ED2K Hash: %s\n", p.Hash)
	fmt.Fprintf(w, "Number of meta tags: %d\n", p.TagCount)
	if opts.showSpecial || opts.showGap || opts.showStandard || opts.showUnknown {
		fmt.Fprintf(w, "\n=== META TAGS ===\n")
		for _, tag := range p.Tags {
			if showCategory(tag.Category(), opts) {
				printTag(w, tag, opts.verbose)
			}
		}
	}
	if opts.visualize {
		printViz(w, p)
	}
	return nil
}

func printTag(w io.Writer, tag *readmet.Tag, verbose bool) {
	switch tag.Category() {
	case readmet.CategorySpecial:
		id, _ := tag.SpecialID()
		fmt.Fprintf(w, "Tag: (Special, %d) ", id)
		desc := readmet.SpecialTagDescription(id, tag.IntValue)
		switch {
		case desc == "" && tag.Type == readmet.TagInteger:
			fmt.Fprintf(w, "Name: %d, Value: %d", id, tag.IntValue)
		case desc == "":
			fmt.Fprintf(w, "Name: %d, Value: %q", id, tag.StringValue)
		case tag.Type == readmet.TagInteger:
			fmt.Fprintf(w, "%s = %d", desc, tag.IntValue)
			if verbose {
				switch id {
				case readmet.FieldFileSize, readmet.FieldDownloaded:
					fmt.Fprintf(w, " (%.2f MB)", float64(tag.IntValue)/bytesPerMB)
				case readmet.FieldLastSeen:
					fmt.Fprintf(w, " (%s)", formatTimestamp(tag.IntValue))
				}
			}
		default:
			fmt.Fprintf(w, "%s = %q", desc, tag.StringValue)
		}
	case readmet.CategoryGap:
		sentinel, ref, _ := tag.GapReference()
		fmt.Fprintf(w, "Tag: (Gap) %s, Reference: %s", readmet.GapTagDescription(sentinel), ref)
		if tag.Type == readmet.TagInteger {
			fmt.Fprintf(w, ", Value: %d", tag.IntValue)
			if verbose {
				fmt.Fprintf(w, " (%.2f MB)", float64(tag.IntValue)/bytesPerMB)
			}
		} else {
			fmt.Fprintf(w, ", Value: %q", tag.StringValue)
		}
	case readmet.CategoryStandard:
		fmt.Fprintf(w, "Tag: (Standard) %s = ", tag.Name)
		if tag.Type == readmet.TagInteger {
			fmt.Fprintf(w, "%d", tag.IntValue)
		} else {
			fmt.Fprintf(w, "%q", tag.StringValue)
		}
		if verbose {
			fmt.Fprintf(w, " - %s", readmet.StandardTagDescription(string(tag.Name)))
		}
	default:
		fmt.Fprintf(w, "Tag: (Unknown) Name: %q, ", tag.Name)
		if tag.Type == readmet.TagInteger {
			fmt.Fprintf(w, "Value: %d", tag.IntValue)
		} else {
			fmt.Fprintf(w, "Value: %q", tag.StringValue)
		}
	}
	fmt.Fprintln(w)
}

func buildViz(p *readmet.PartMet) vizReport {
	gaps := p.Gaps()
	fileSize := p.FileSize()
	downloaded := p.DownloadedBytes()
	totalGap := readmet.TotalGapSize(gaps)

	details := make([]gapReport, 0, len(gaps))
	for _, g := range gaps {
		details = append(details, gapReport{
			Start:  g.Start,
			End:    g.End,
			Size:   g.Size(),
			SizeMB: float64(g.Size()) / bytesPerMB,
		})
	}
	bar := make([]int, barWidth)
	for i, ok := range readmet.StatusMap(gaps, fileSize, barWidth) {
		if ok {
			bar[i] = 1
		}
	}
	return vizReport{
		TotalSize:    fileSize,
		TotalSizeMB:  float64(fileSize) / bytesPerMB,
		Downloaded:   downloaded,
		DownloadedMB: float64(downloaded) / bytesPerMB,
		Percentage:   readmet.Percentage(downloaded, fileSize),
		Gaps: gapsReport{
			Count:       len(gaps),
			TotalSize:   totalGap,
			TotalSizeMB: float64(totalGap) / bytesPerMB,
			Percentage:  readmet.Percentage(totalGap, fileSize),
			Details:     details,
		},
		Bar: bar,
	}
}

func printViz(w io.Writer, p *readmet.PartMet) {
	gaps := p.Gaps()
	fileSize := p.FileSize()
	downloaded := p.DownloadedBytes()

	fmt.Fprintf(w, "\n=== FILE DOWNLOAD VISUALIZATION ===\n")
	fmt.Fprintf(w, "Total size: %d bytes (%.2f MB)\n", fileSize, float64(fileSize)/bytesPerMB)
	fmt.Fprintf(w, "Downloaded: %d bytes (%.2f MB, %.1f%%)\n",
		downloaded, float64(downloaded)/bytesPerMB, readmet.Percentage(downloaded, fileSize))

	fmt.Fprint(w, "[")
	for _, ok := range readmet.StatusMap(gaps, fileSize, barWidth) {
		if ok {
			fmt.Fprint(w, "#")
		} else {
			fmt.Fprint(w, " ")
		}
	}
	fmt.Fprint(w, "]\n\n")

	if len(gaps) > 0 {
		totalGap := readmet.TotalGapSize(gaps)
		fmt.Fprintf(w, "Gaps: %d\n", len(gaps))
		fmt.Fprintf(w, "Total gap size: %.2f MB (%.1f%% of file)\n\n",
			float64(totalGap)/bytesPerMB, readmet.Percentage(totalGap, fileSize))
	}
}
