package command

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/hupe1980/bikestats/blobstore"
	"github.com/hupe1980/bikestats/codec"
	"github.com/hupe1980/bikestats/dataset"
	"github.com/urfave/cli/v2"
)

// flag names
const (
	fromFlagName     = "from"
	toFlagName       = "to"
	compressFlagName = "compress"
)

// exportCmd copies a dataset file to a local path, re-compressing it.
type exportCmd struct {
	from     string
	to       string
	compress string
}

// ExportCommand returns a [*cli.Command] that fetches a table from any
// supported store and writes it locally.
func ExportCommand() *cli.Command {
	cmd := &exportCmd{}
	return &cli.Command{
		Name:        "export",
		Usage:       "bikestats export --from s3://bucket/day.csv.gz --to data/day.csv.zst",
		Description: "export fetches a table, checks that it parses, and writes it with the compression chosen by --compress or the extension of --to.",
		Flags:       cmd.flags(),
		Action:      cmd.action,
	}
}

func (cmd *exportCmd) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        fromFlagName,
			Usage:       "source table: path or file://, s3://, minio://, http(s):// URI",
			Required:    true,
			Destination: &cmd.from,
		}, &cli.StringFlag{
			Name:        toFlagName,
			Usage:       "local destination path",
			Required:    true,
			Destination: &cmd.to,
		}, &cli.StringFlag{
			Name:        compressFlagName,
			Usage:       "none, gzip, zstd or lz4 (default: from the --to extension)",
			Destination: &cmd.compress,
		},
	}
}

func (cmd *exportCmd) action(c *cli.Context) error {
	kind := codec.KindOf(cmd.to)
	if cmd.compress != "" {
		var err error
		if kind, err = codec.ParseKind(cmd.compress); err != nil {
			return err
		}
	}

	loc, err := blobstore.ParseLocation(cmd.from)
	if err != nil {
		return err
	}
	store, err := openStore(c.Context, loc)
	if err != nil {
		return err
	}

	raw, err := blobstore.ReadAll(c.Context, store, loc.Name)
	if err != nil {
		return fmt.Errorf("read %s: %w", loc, err)
	}

	dr, err := codec.Decompress(loc.Name, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decompress %s: %w", loc, err)
	}
	plain, err := io.ReadAll(dr)
	dr.Close()
	if err != nil {
		return fmt.Errorf("decompress %s: %w", loc, err)
	}

	frame, err := dataset.ReadFrame(bytes.NewReader(plain))
	if err != nil {
		return fmt.Errorf("parse %s: %w", loc, err)
	}

	out, err := codec.Compress(kind, plain)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cmd.to, out, 0o644); err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "wrote %d rows (%d bytes, %s) to %s\n", frame.Len(), len(out), kind, cmd.to)
	return nil
}
