package main

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/akeil/sntool"
	"github.com/akeil/sntool/internal/config"
	"github.com/akeil/sntool/internal/fs"
	"github.com/akeil/sntool/pkg/block"
)

// target is a named binary block to be written to a file.
type target struct {
	name string
	blob *block.Blob
}

func doDump(s *config.Config, path string) error {
	n, err := readOne(s, path)
	if err != nil {
		return err
	}

	err = os.MkdirAll(s.Output, 0755)
	if err != nil {
		return err
	}

	targets := collectTargets(n)
	fmt.Printf("%v dump %d blocks from %q\n", ellipsis, len(targets), path)

	var group errgroup.Group
	for _, t := range targets {
		t := t
		group.Go(func() error {
			return dumpBlock(n, t, s.Output)
		})
	}
	err = group.Wait()
	if err != nil {
		fmt.Printf("%v failed to dump %q: %v\n", crossmark, path, err)
		return err
	}

	fmt.Printf("%v blocks from %q saved in %q.\n", checkmark, path, s.Output)
	return nil
}

// collectTargets lists all present binary blocks of a document.
func collectTargets(n *sntool.Supernote) []target {
	targets := make([]target, 0)
	add := func(name string, b *block.Blob) {
		if !b.Absent() {
			targets = append(targets, target{name, b})
		}
	}

	if n.Cover != nil {
		add("cover.bin", n.Cover.Bitmap)
	}

	for _, p := range n.Pages {
		prefix := fmt.Sprintf("page-%04d", p.Number)
		for _, l := range p.Layers {
			add(fmt.Sprintf("%s-%v.bin", prefix, l.Name), l.Bitmap)
			add(fmt.Sprintf("%s-%v-vector.bin", prefix, l.Name), l.VectorGraph)
		}
		add(prefix+"-totalpath.bin", p.TotalPath)
		add(prefix+"-recogn.bin", p.RecognFile)
	}

	for e := n.Keywords.Oldest(); e != nil; e = e.Next() {
		for i, k := range e.Value {
			add(fmt.Sprintf("keyword-%s-%02d.bin", e.Key, i), k.Bitmap)
		}
	}
	for e := n.Titles.Oldest(); e != nil; e = e.Next() {
		for i, t := range e.Value {
			add(fmt.Sprintf("title-%s-%02d.bin", e.Key, i), t.Bitmap)
		}
	}

	return targets
}

func dumpBlock(n *sntool.Supernote, t target, outDir string) error {
	data, err := n.Resolve(t.blob)
	if err != nil {
		return fmt.Errorf("%v: %w", t.name, err)
	}
	return fs.WriteFile(filepath.Join(outDir, t.name), data)
}
