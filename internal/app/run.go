package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/nodebridge/internal/asset"
	"github.com/specialistvlad/nodebridge/internal/ctxlog"
	"github.com/specialistvlad/nodebridge/internal/encoding"
	"github.com/specialistvlad/nodebridge/internal/fsutil"
	"github.com/specialistvlad/nodebridge/internal/node"
	"github.com/specialistvlad/nodebridge/internal/publish"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of inspecting one content file.
type Result struct {
	File        string
	AssetID     string
	AssetType   string
	Fingerprint string
	Document    []byte
}

// Run inspects every configured file concurrently and writes the encoded
// documents to the output in file order. Nothing is written if any file fails.
func (a *App) Run(ctx context.Context) error {
	ctx = a.Context(ctx)
	a.logger.Debug("App.Run method started.")

	files, err := fsutil.FindFiles(a.config.Paths, Extensions...)
	if err != nil {
		return fmt.Errorf("failed to discover content files: %w", err)
	}
	if len(files) == 0 {
		return errors.New("no content files found")
	}
	a.logger.Debug("Content files discovered.", "count", len(files))

	results, err := a.InspectAll(ctx, files)
	if err != nil {
		return err
	}

	for _, res := range results {
		if err := a.write(res.Document); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// InspectAll inspects files with at most Config.Workers running at once. The
// results keep the order of files.
func (a *App) InspectAll(ctx context.Context, files []string) ([]Result, error) {
	ctx = a.Context(ctx)
	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.Workers)
	for i, file := range files {
		g.Go(func() error {
			res, err := a.Inspect(gctx, file)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Inspect loads file, bridges the value at the configured path as an asset
// wrapper and encodes the wrapper with the configured format.
func (a *App) Inspect(ctx context.Context, file string) (Result, error) {
	ctx = a.Context(ctx)
	logger := ctxlog.FromContext(ctx).With("file", file)

	graph, err := a.load(ctx, file)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load %s: %w", file, err)
	}

	target, ok := node.Lookup(graph.Root(), a.path)
	if !ok {
		return Result{}, fmt.Errorf("%s: no value at path %q", file, a.path.String())
	}

	wrapper := asset.NewWrapper(target)
	inner, err := wrapper.Asset()
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", file, err)
	}
	id, err := inner.ID()
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", file, err)
	}
	typ, err := inner.Type()
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", file, err)
	}

	doc, err := a.protocol.Marshal(wrapper)
	if err != nil {
		return Result{}, fmt.Errorf("%s: failed to encode: %w", file, err)
	}
	fp, err := encoding.Fingerprint(wrapper.Node())
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", file, err)
	}
	logger.Info("Asset inspected.", "id", id, "type", typ, "fingerprint", fp.String(), "bytes", len(doc))

	res := Result{
		File:        file,
		AssetID:     id,
		AssetType:   typ,
		Fingerprint: fp.String(),
		Document:    doc,
	}

	if a.config.Publish.URL != "" {
		msg := publish.Message{
			Source:      file,
			Format:      a.protocol.Format().Name(),
			Fingerprint: res.Fingerprint,
			Document:    string(doc),
		}
		reply, err := a.publish(ctx, a.publishOptions(), msg)
		if err != nil {
			return Result{}, fmt.Errorf("%s: failed to publish: %w", file, err)
		}
		logger.Info("Document published.", "url", a.config.Publish.URL, "reply", reply)
	}

	return res, nil
}

func (a *App) write(doc []byte) error {
	if _, err := a.outW.Write(doc); err != nil {
		return err
	}
	if _, binary := a.protocol.Format().(encoding.MessagePack); binary || bytes.HasSuffix(doc, []byte("\n")) {
		return nil
	}
	_, err := a.outW.Write([]byte("\n"))
	return err
}
