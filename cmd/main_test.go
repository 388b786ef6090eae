package main

import (
	"flag"
	"testing"
)

func TestBindFlagsDefaults(t *testing.T) {
	fs := flag.NewFlagSet("modelview", flag.ContinueOnError)
	opts := bindFlags(fs)
	if err := fs.Parse([]string{"model.obj"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if *opts.Width != 1280 || *opts.Height != 720 {
		t.Errorf("default size = %dx%d; want 1280x720", *opts.Width, *opts.Height)
	}
	if *opts.Scale != 1.0 {
		t.Errorf("default scale = %v; want 1.0", *opts.Scale)
	}
	if *opts.FPS != 60 || *opts.Duration != 10.0 {
		t.Errorf("default record settings = %d fps, %vs; want 60 fps, 10s", *opts.FPS, *opts.Duration)
	}
	if *opts.Info || *opts.Record || *opts.Formats || *opts.Help {
		t.Error("boolean flags should default to false")
	}
	if fs.Arg(0) != "model.obj" {
		t.Errorf("positional arg = %q; want \"model.obj\"", fs.Arg(0))
	}
}

func TestBindFlagsOverrides(t *testing.T) {
	fs := flag.NewFlagSet("modelview", flag.ContinueOnError)
	opts := bindFlags(fs)
	args := []string{
		"-width", "640", "-height", "480",
		"-scale", "2.5",
		"-screenshot", "shot.png",
		"-record", "-fps", "30", "-duration", "4", "-output", "spin.mp4",
		"scene.glb",
	}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if *opts.Width != 640 || *opts.Height != 480 {
		t.Errorf("size = %dx%d; want 640x480", *opts.Width, *opts.Height)
	}
	if *opts.Scale != 2.5 {
		t.Errorf("scale = %v; want 2.5", *opts.Scale)
	}
	if *opts.Screenshot != "shot.png" {
		t.Errorf("screenshot = %q; want \"shot.png\"", *opts.Screenshot)
	}
	if !*opts.Record || *opts.FPS != 30 || *opts.Duration != 4 || *opts.OutputFile != "spin.mp4" {
		t.Errorf("record settings = %v/%d/%v/%q; want true/30/4/\"spin.mp4\"",
			*opts.Record, *opts.FPS, *opts.Duration, *opts.OutputFile)
	}
	if fs.Arg(0) != "scene.glb" {
		t.Errorf("positional arg = %q; want \"scene.glb\"", fs.Arg(0))
	}
}
