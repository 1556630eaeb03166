package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/akeil/sntool/internal/config"
	"github.com/akeil/sntool/pkg/layers"
	"github.com/akeil/sntool/pkg/recogn"
)

type fileInfo struct {
	Path       string `json:"path"`
	FileType   string `json:"fileType"`
	Signature  string `json:"signature"`
	Version    int    `json:"version"`
	Equipment  string `json:"equipment"`
	PageWidth  int    `json:"pageWidth"`
	PageHeight int    `json:"pageHeight"`
	Pages      int    `json:"pages"`
	Keywords   int    `json:"keywords"`
	Titles     int    `json:"titles"`
	Cover      bool   `json:"cover"`
}

func doInfo(s *config.Config, paths []string) error {
	notes, err := readAll(s, paths)
	if err != nil {
		return err
	}

	infos := make([]fileInfo, len(notes))
	for i, n := range notes {
		infos[i] = fileInfo{
			Path:       paths[i],
			FileType:   n.FileType,
			Signature:  n.Signature,
			Version:    n.Version,
			Equipment:  n.Header.ApplyEquipment,
			PageWidth:  n.PageWidth,
			PageHeight: n.PageHeight,
			Pages:      n.PageCount(),
			Keywords:   n.KeywordCount(),
			Titles:     n.TitleCount(),
			Cover:      n.Cover != nil,
		}
	}

	if s.Format == config.FormatJSON {
		return writeJSON(infos)
	}

	for _, info := range infos {
		fmt.Println(info.Path)
		fmt.Println(strings.Repeat("-", len(info.Path)))
		fmt.Printf("Type:      %v\n", info.FileType)
		fmt.Printf("Signature: %v\n", info.Signature)
		fmt.Printf("Equipment: %v\n", info.Equipment)
		fmt.Printf("Page size: %dx%d\n", info.PageWidth, info.PageHeight)
		fmt.Printf("Pages:     %d\n", info.Pages)
		fmt.Printf("Keywords:  %d\n", info.Keywords)
		fmt.Printf("Titles:    %d\n", info.Titles)
		fmt.Println()
	}
	return nil
}

func doPages(s *config.Config, path string) error {
	n, err := readOne(s, path)
	if err != nil {
		return err
	}

	if s.Format == config.FormatJSON {
		return writeJSON(n.Pages)
	}

	for _, p := range n.Pages {
		visible := p.VisibleLayers()
		names := make([]string, len(visible))
		for i, l := range visible {
			names[i] = l.Name.String()
		}

		fmt.Printf("%4d | %-24s | %-32s | %v\n",
			p.Number, p.Style, seqString(p.LayerSeq), strings.Join(names, ","))
		if p.RecognStatus != recogn.None {
			fmt.Printf("     | recognition %v\n", p.RecognStatus)
		}
	}
	return nil
}

func seqString(seq []layers.Name) string {
	parts := make([]string, len(seq))
	for i, n := range seq {
		parts[i] = n.String()
	}
	return strings.Join(parts, ",")
}

type pageText struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

func doText(s *config.Config, path string) error {
	n, err := readOne(s, path)
	if err != nil {
		return err
	}

	texts := make([]pageText, 0, len(n.Pages))
	for _, p := range n.Pages {
		if p.Text != "" {
			texts = append(texts, pageText{p.Number, p.Text})
		}
	}

	if s.Format == config.FormatJSON {
		return writeJSON(texts)
	}

	if len(texts) == 0 {
		fmt.Printf("%v No recognized text in %q\n", crossmark, path)
		return nil
	}
	for _, t := range texts {
		fmt.Printf("--- page %d ---\n", t.Number)
		fmt.Println(t.Text)
	}
	return nil
}

func writeJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
