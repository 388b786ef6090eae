package renderer

import (
	"fmt"
	"image/png"
	"io"
	"log"
	"math"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"modelview/options"
)

// Frame represents a single rendered frame's data, ready for encoding.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// Screenshot renders one frame into the offscreen target and writes it as
// a PNG.
func (r *Renderer) Screenshot(path string) error {
	gl.BindFramebuffer(gl.FRAMEBUFFER, r.offscreen.fbo)
	r.width, r.height = r.offscreen.width, r.offscreen.height
	r.turntable = false

	r.RenderFrame(0)
	img := r.offscreen.ReadImage()
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating screenshot file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding screenshot: %w", err)
	}
	return nil
}

// Record renders one full turntable revolution into the offscreen target
// and pipes the frames to ffmpeg. The renderer produces, the encoder
// goroutine consumes.
func (r *Renderer) Record(opts *options.ViewerOptions) error {
	if *opts.Duration <= 0 || *opts.FPS <= 0 {
		return fmt.Errorf("record needs a positive duration and fps")
	}

	frameChan := make(chan *Frame, 3)
	doneChan := make(chan error, 1)
	go runEncoder(opts, r.offscreen.width, r.offscreen.height, frameChan, doneChan)

	gl.BindFramebuffer(gl.FRAMEBUFFER, r.offscreen.fbo)
	r.width, r.height = r.offscreen.width, r.offscreen.height
	r.turntable = false

	totalFrames := int(*opts.Duration * float64(*opts.FPS))
	for i := 0; i < totalFrames; i++ {
		r.spin = float32(2 * math.Pi * float64(i) / float64(totalFrames))
		r.RenderFrame(float64(i) / float64(*opts.FPS))
		img := r.offscreen.ReadImage()

		select {
		case err := <-doneChan:
			gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
			return fmt.Errorf("encoder exited early: %w", err)
		case frameChan <- &Frame{Pixels: img.Pix, PTS: int64(i)}:
		}
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	close(frameChan)
	return <-doneChan
}

// runEncoder is the consumer. It feeds raw RGBA frames to ffmpeg over a pipe.
func runEncoder(opts *options.ViewerOptions, width, height int, frameChan <-chan *Frame, doneChan chan<- error) {
	pipeReader, pipeWriter := io.Pipe()

	inputArgs := ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", width, height),
		"framerate": *opts.FPS,
	}
	outputArgs := ffmpeg.KwArgs{
		"c:v":      "libx264",
		"pix_fmt":  "yuv420p",
		"crf":      "18",
		"movflags": "+faststart",
	}

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(*opts.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()

	if *opts.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(*opts.FFMPEGPath)
	}

	errc := make(chan error, 1)
	go func() {
		errc <- ffmpegCmd.Run()
	}()

	for frame := range frameChan {
		if _, err := pipeWriter.Write(frame.Pixels); err != nil {
			log.Printf("Error writing frame %d to pipe: %v", frame.PTS, err)
			break
		}
	}
	pipeWriter.Close()
	doneChan <- <-errc
}
