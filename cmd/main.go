package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"

	glfw "github.com/go-gl/glfw/v3.3/glfw"

	"modelview/fixture"
	"modelview/glfwcontext"
	"modelview/loader"
	"modelview/options"
	"modelview/renderer"
	"modelview/scene"
)

func init() {
	runtime.LockOSThread()
}

// bindFlags registers every viewer flag on fs and returns the options struct
// their values land in.
func bindFlags(fs *flag.FlagSet) *options.ViewerOptions {
	opts := &options.ViewerOptions{}
	opts.Width = fs.Int("width", 1280, "Width of the window or capture")
	opts.Height = fs.Int("height", 720, "Height of the window or capture")
	opts.Scale = fs.Float64("scale", 1.0, "Uniform scale applied to the model at load time")
	opts.Info = fs.Bool("info", false, "Print model statistics and exit")
	opts.Screenshot = fs.String("screenshot", "", "Render a single frame to the given PNG file and exit")
	opts.Record = fs.Bool("record", false, "Record a turntable video instead of opening a window")
	opts.Duration = fs.Float64("duration", 10.0, "Duration of the recording in seconds")
	opts.FPS = fs.Int("fps", 60, "Frames per second for recording")
	opts.OutputFile = fs.String("output", "output.mp4", "Output file name for recording")
	opts.FFMPEGPath = fs.String("ffmpeg", "", "Path to ffmpeg executable")
	opts.Fixture = fs.String("fixture", "", "Write the built-in cube fixture to the given OBJ path and exit")
	opts.Formats = fs.Bool("formats", false, "List supported model formats and exit")
	opts.Help = fs.Bool("help", false, "Show help message")
	return opts
}

func main() {
	opts := bindFlags(flag.CommandLine)
	flag.Parse()

	if *opts.Help {
		fmt.Println("modelview - 3D model viewer")
		fmt.Println("Usage: modelview [flags] <model-file>")
		flag.PrintDefaults()
		return
	}

	if *opts.Formats {
		fmt.Printf("Supported model formats: %s\n", strings.Join(loader.Formats(), " "))
		return
	}

	if *opts.Fixture != "" {
		if err := fixture.WriteCubeOBJ(*opts.Fixture); err != nil {
			log.Fatalf("Failed to write fixture: %v", err)
		}
		log.Printf("Wrote cube fixture to %s", *opts.Fixture)
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <model-file>\n", os.Args[0])
		os.Exit(1)
	}
	opts.ModelPath = flag.Arg(0)

	log.Printf("Loading model: %s", opts.ModelPath)
	lopts := loader.DefaultOptions()
	lopts.Scale = *opts.Scale
	mesh, err := loader.Load(opts.ModelPath, lopts)
	if err != nil {
		log.Fatalf("Failed to load model: %v", err)
	}
	log.Printf("Loaded %q: %d groups, %d triangles", mesh.Name, len(mesh.Groups), mesh.TriangleCount())

	if *opts.Info {
		printInfo(mesh)
		return
	}

	runViewer(opts, mesh)
}

func runViewer(opts *options.ViewerOptions, mesh *scene.Mesh) {
	if err := glfwcontext.InitGraphics(); err != nil {
		log.Fatalf("Failed to initialize graphics: %v", err)
	}
	defer glfwcontext.TerminateGraphics()

	// Capture modes render offscreen, so the window stays hidden.
	visible := *opts.Screenshot == "" && !*opts.Record

	ctx, err := glfwcontext.New(opts, "modelview - "+mesh.Name, visible)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	defer ctx.Shutdown()

	r, err := renderer.NewRenderer(opts, ctx)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer r.Shutdown()

	ctx.RegisterKeyCallback(glfw.KeySpace, r.ToggleTurntable)
	ctx.RegisterKeyCallback(glfw.KeyW, r.ToggleWireframe)
	ctx.RegisterKeyCallback(glfw.KeyR, r.ResetView)

	if err := r.LoadMesh(mesh); err != nil {
		log.Fatalf("Failed to upload mesh: %v", err)
	}

	switch {
	case *opts.Screenshot != "":
		if err := r.Screenshot(*opts.Screenshot); err != nil {
			log.Fatalf("Screenshot failed: %v", err)
		}
		log.Printf("Wrote screenshot to %s", *opts.Screenshot)
	case *opts.Record:
		log.Println("Starting turntable recording...")
		if err := r.Record(opts); err != nil {
			log.Fatalf("Recording failed: %v", err)
		}
		log.Printf("Successfully rendered to %s", *opts.OutputFile)
	default:
		log.Println("Starting interactive render loop...")
		r.Run()
	}
}

func printInfo(mesh *scene.Mesh) {
	bounds := mesh.Bounds()
	center := bounds.Center()
	size := bounds.Size()

	fmt.Printf("Model:        %s\n", mesh.Name)
	fmt.Printf("Groups:       %d\n", len(mesh.Groups))
	fmt.Printf("Vertices:     %d\n", mesh.VertexCount())
	fmt.Printf("Triangles:    %d\n", mesh.TriangleCount())
	fmt.Printf("Bounds min:   (%.4f, %.4f, %.4f)\n", bounds.Min.X(), bounds.Min.Y(), bounds.Min.Z())
	fmt.Printf("Bounds max:   (%.4f, %.4f, %.4f)\n", bounds.Max.X(), bounds.Max.Y(), bounds.Max.Z())
	fmt.Printf("Center:       (%.4f, %.4f, %.4f)\n", center.X(), center.Y(), center.Z())
	fmt.Printf("Size:         (%.4f, %.4f, %.4f)\n", size.X(), size.Y(), size.Z())
	fmt.Printf("Surface area: %.4f\n", mesh.SurfaceArea())

	for _, g := range mesh.Groups {
		mat := "none"
		if g.Material != nil {
			mat = g.Material.Name
			if g.Material.DiffuseImage != nil {
				mat += " (textured)"
			}
		}
		fmt.Printf("  group %-20q %8d triangles, material %s\n", g.Name, g.TriangleCount(), mat)
	}
}
