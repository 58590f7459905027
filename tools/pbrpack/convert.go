package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/depp/pbrpack/lib/convert"
	"github.com/depp/pbrpack/lib/getpath"
	"github.com/depp/pbrpack/lib/job"
	"github.com/depp/pbrpack/lib/settings"
	"github.com/depp/pbrpack/lib/texture"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var convertFlags struct {
	inputs     [len(channelFlags)]string
	output     string
	name       string
	size       int
	types      job.VariantList
	convention texture.Convention
	converter  string
	strict     bool
	clean      bool
	noSave     bool
}

// channelFlags are the input flag names, in job.AllChannels order.
var channelFlags = [...]string{"basecolor", "normal", "ao", "metallic", "roughness"}

var cmdConvert = cobra.Command{
	Use:   "convert",
	Short: "Pack a PBR texture set and convert it to PAA.",
	Long: "Convert packs the selected variants (co, nohq, as, smdi) of a PBR texture\n" +
		"set into PNG files named <name>_<variant>.png, then runs PAAConverter.exe or\n" +
		"ImageToPAA.exe on them. Flags which are not given default to the values\n" +
		"saved by the previous run.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		st, err := openSettings(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		req, err := buildRequest(ctx, cmd.Flags(), st)
		if err != nil {
			return err
		}
		j, err := job.New(req)
		if err != nil {
			return err
		}
		if !convertFlags.noSave {
			if err := saveRequest(ctx, st, j); err != nil {
				logrus.Warnf("could not save settings: %v", err)
			}
		}
		return runJob(ctx, cmd.OutOrStdout(), j)
	},
}

func init() {
	f := cmdConvert.Flags()
	for i, c := range job.AllChannels {
		f.StringVar(&convertFlags.inputs[i], channelFlags[i], "", c.String()+" texture `file`")
	}
	f.StringVarP(&convertFlags.output, "output", "o", "", "output `directory`")
	f.StringVarP(&convertFlags.name, "name", "n", "", "output base `name`")
	f.IntVarP(&convertFlags.size, "size", "s", 0, "output resolution: 512, 1024, 2048, or 4096")
	f.VarP(&convertFlags.types, "types", "t", "comma-separated output variants: co,nohq,as,smdi")
	f.Var(&convertFlags.convention, "convention", "normal map convention: auto, directx, or opengl")
	f.StringVar(&convertFlags.converter, "converter", "", "path to PAAConverter.exe or ImageToPAA.exe")
	f.BoolVar(&convertFlags.strict, "strict-inputs", false, "require all five input textures")
	f.BoolVar(&convertFlags.clean, "clean", false, "remove the intermediate PNG files after converting")
	f.BoolVar(&convertFlags.noSave, "no-save", false, "do not save these settings for the next run")
}

// buildRequest combines flags, saved settings, and the environment. Flags
// win, then saved settings, then the environment, then built-in defaults.
// Saved paths which no longer exist are ignored.
func buildRequest(ctx context.Context, fs *pflag.FlagSet, st *settings.Store) (job.Request, error) {
	req := job.Request{
		Inputs:       make(map[job.Channel]string),
		Convention:   convertFlags.convention,
		StrictInputs: convertFlags.strict,
	}
	saved := func(key string) (string, error) {
		v, _, err := st.Get(ctx, key)
		return v, err
	}

	for i, c := range job.AllChannels {
		p := convertFlags.inputs[i]
		if !fs.Changed(channelFlags[i]) {
			v, err := saved(settings.TextureKey(c.String()))
			if err != nil {
				return req, err
			}
			if getpath.Exists(v) {
				p = v
			}
		}
		if p != "" {
			req.Inputs[c] = getpath.GetPath(p)
		}
	}

	req.OutputDir = convertFlags.output
	if !fs.Changed("output") {
		v, err := saved(settings.KeyOutputDir)
		if err != nil {
			return req, err
		}
		if getpath.IsDir(v) {
			req.OutputDir = v
		}
	}
	req.OutputDir = getpath.GetPath(req.OutputDir)

	req.ConverterPath = convertFlags.converter
	if !fs.Changed("converter") {
		v, err := saved(settings.KeyConverter)
		if err != nil {
			return req, err
		}
		if getpath.Exists(v) && !getpath.IsDir(v) {
			req.ConverterPath = v
		} else {
			req.ConverterPath = cfg.ConverterPath
		}
	}
	req.ConverterPath = getpath.GetPath(req.ConverterPath)

	req.BaseName = convertFlags.name
	if !fs.Changed("name") {
		v, err := saved(settings.KeyBaseName)
		if err != nil {
			return req, err
		}
		req.BaseName = v
	}

	req.Size = convertFlags.size
	if !fs.Changed("size") {
		v, err := saved(settings.KeyResolution)
		if err != nil {
			return req, err
		}
		req.Size = standardSize(v)
		if req.Size == 0 {
			req.Size = cfg.Size
		}
		if req.Size == 0 {
			req.Size = job.DefaultSize
		}
	}

	if fs.Changed("types") {
		req.Selections = convertFlags.types
	} else {
		sel, err := savedSelections(ctx, st)
		if err != nil {
			return req, err
		}
		req.Selections = sel
	}

	if !fs.Changed("convention") {
		v, err := saved(settings.KeyConvention)
		if err != nil {
			return req, err
		}
		if v != "" {
			var c texture.Convention
			if err := c.Set(v); err == nil {
				req.Convention = c
			}
		}
	}
	return req, nil
}

// standardSize parses a saved resolution, returning 0 unless it is one of
// the standard sizes.
func standardSize(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	for _, sz := range job.Sizes {
		if n == sz {
			return n
		}
	}
	return 0
}

// savedSelections returns the variants whose saved checkbox state is true.
// Variants with no saved state are selected, unless the environment gives a
// list.
func savedSelections(ctx context.Context, st *settings.Store) ([]job.Variant, error) {
	if len(cfg.Variants) != 0 {
		anySaved := false
		for _, v := range job.AllVariants {
			if _, ok, err := st.Get(ctx, settings.TypeKey(v.String())); err != nil {
				return nil, err
			} else if ok {
				anySaved = true
			}
		}
		if !anySaved {
			var sel []job.Variant
			for _, code := range cfg.Variants {
				v, err := job.ParseVariant(code)
				if err != nil {
					return nil, errors.Wrap(err, "invalid variant in environment")
				}
				sel = append(sel, v)
			}
			return sel, nil
		}
	}
	var sel []job.Variant
	for _, v := range job.AllVariants {
		s, ok, err := st.Get(ctx, settings.TypeKey(v.String()))
		if err != nil {
			return nil, err
		}
		if !ok {
			sel = append(sel, v)
			continue
		}
		if b, _ := strconv.ParseBool(s); b {
			sel = append(sel, v)
		}
	}
	return sel, nil
}

func saveRequest(ctx context.Context, st *settings.Store, j *job.Job) error {
	values := map[string]string{
		settings.KeyOutputDir:  j.OutputDir(),
		settings.KeyConverter:  j.ConverterPath(),
		settings.KeyResolution: strconv.Itoa(j.Size()),
		settings.KeyBaseName:   j.BaseName(),
	}
	if convertFlags.convention != texture.UnknownConvention {
		values[settings.KeyConvention] = convertFlags.convention.String()
	} else {
		values[settings.KeyConvention] = "auto"
	}
	for _, c := range job.AllChannels {
		values[settings.TextureKey(c.String())] = j.Input(c)
	}
	selected := make(map[job.Variant]bool)
	for _, v := range j.Selections() {
		selected[v] = true
	}
	for _, v := range job.AllVariants {
		values[settings.TypeKey(v.String())] = strconv.FormatBool(selected[v])
	}
	return st.SetAll(ctx, values)
}

// runJob runs the job on a worker and prints its progress to w.
func runJob(ctx context.Context, w io.Writer, j *job.Job) error {
	logrus.Debugf("normal convention: %s, converter mode: %s", j.Convention(), j.Mode())
	wk := convert.Worker{Converter: convert.Converter{Log: logrus.StandardLogger()}}
	task, err := wk.Submit(ctx, j)
	if err != nil {
		return err
	}
	var progress int
	for ev := range task.Events() {
		switch ev.Kind {
		case convert.ProgressEvent:
			progress = ev.Progress
		case convert.LogEvent:
			fmt.Fprintf(w, "[%3d%%] %s\n", progress, ev.Message)
		}
	}
	res := task.Wait()
	if res.State != convert.Completed {
		return res.Err
	}
	for _, p := range res.Outputs() {
		fmt.Fprintln(w, p)
	}
	if convertFlags.clean {
		if err := res.CleanPNGs(); err != nil {
			return errors.Wrap(err, "could not remove PNG files")
		}
	}
	return nil
}
