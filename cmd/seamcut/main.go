package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/seamcut/seamcut"
	"github.com/seamcut/seamcut/utils"
)

const helpBanner = `
┌─┐┌─┐┌─┐┌┬┐┌─┐┬ ┬┌┬┐
└─┐├┤ ├─┤││││  │ │ │
└─┘└─┘┴ ┴┴ ┴└─┘└─┘ ┴

Content aware image resize library.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// result holds the relevant information about one processed image.
type result struct {
	path string
	err  error
}

var (
	// imgurl holds the temporary file of a downloaded source image.
	imgurl *os.File
	// spinner is the progress indicator shown while carving.
	spinner *utils.Spinner
)

// Version indicates the current build version.
var Version string

var (
	// Flags
	source         = flag.String("in", pipeName, "Source")
	destination    = flag.String("out", pipeName, "Destination")
	newWidth       = flag.Int("width", 0, "New width")
	newHeight      = flag.Int("height", 0, "New height")
	percentage     = flag.Bool("perc", false, "Interpret width and height as percentages")
	square         = flag.Bool("square", false, "Reduce the image to square dimensions")
	scale          = flag.Bool("scale", false, "Proportional scaling before carving")
	method         = flag.String("method", "dp", "Seam finding method (dp, greedy, graph)")
	blurRadius     = flag.Int("blur", 1, "Blur radius")
	sobelThreshold = flag.Int("sobel", 10, "Sobel filter threshold")
	debug          = flag.Bool("debug", false, "Save a seam overlay next to the output")
	seamColor      = flag.String("color", "#ff0000", "Seam overlay color")
	faceDetect     = flag.Bool("face", false, "Use face detection")
	faceAngle      = flag.Float64("angle", 0.0, "Plane rotated faces angle")
	cascade        = flag.String("cc", "", "Cascade classifier")
	workers        = flag.Int("conc", runtime.NumCPU(), "Number of files to process concurrently")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, helpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *newWidth == 0 && *newHeight == 0 {
		flag.Usage()
		log.Fatal(fmt.Sprintf("%s%s",
			utils.DecorateText("\nPlease provide a width, height or percentage for image rescaling!", utils.ErrorMessage),
			utils.DefaultColor,
		))
	}

	m, err := seamcut.ParseMethod(*method)
	if err != nil {
		log.Fatal(utils.DecorateText(err.Error(), utils.ErrorMessage))
	}
	if *faceDetect && len(*cascade) == 0 {
		log.Fatal(utils.DecorateText("Please specify a face classifier when using the -face flag!", utils.ErrorMessage))
	}

	proc := &seamcut.Processor{
		NewWidth:       *newWidth,
		NewHeight:      *newHeight,
		Percentage:     *percentage,
		Square:         *square,
		Scale:          *scale,
		Method:         m,
		BlurRadius:     *blurRadius,
		SobelThreshold: *sobelThreshold,
		Debug:          *debug,
		SeamColor:      *seamColor,
		FaceDetect:     *faceDetect,
		FaceAngle:      *faceAngle,
		Classifier:     *cascade,
	}

	spinnerText := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ SEAMCUT", utils.StatusMessage),
		utils.DecorateText("is resizing the image...", utils.DefaultMessage))
	spinner = utils.NewSpinner(spinnerText, time.Millisecond*200, true)

	// Supported files
	validExtensions := []string{".jpg", ".png", ".jpeg", ".bmp", ".gif"}

	var fs os.FileInfo

	// Check if the source path is a local image, a directory or a URL.
	if utils.IsValidUrl(*source) {
		src, err := utils.DownloadImage(*source)
		if src != nil {
			defer os.Remove(src.Name())
		}
		if err != nil {
			log.Fatalf(
				utils.DecorateText("Failed to load the source image: %v", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
		fs, err = src.Stat()
		if err != nil {
			log.Fatalf(
				utils.DecorateText("Failed to load the source image: %v", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
		imgurl = src
	} else {
		if *source == pipeName {
			fs, err = os.Stdin.Stat()
		} else {
			fs, err = os.Stat(*source)
		}
		if err != nil {
			log.Fatalf(
				utils.DecorateText("Failed to load the source image: %v", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
	}

	now := time.Now()

	switch mode := fs.Mode(); {
	case mode.IsDir():
		// Process the image files from the specified directory concurrently.
		if _, err := os.Stat(*destination); err != nil {
			if err := os.Mkdir(*destination, 0755); err != nil {
				log.Fatalf(
					utils.DecorateText("Unable to create the destination directory: %v\n", utils.ErrorMessage),
					utils.DecorateText(err.Error(), utils.DefaultMessage),
				)
			}
		}
		if *workers <= 0 || *workers > maxWorkers {
			*workers = runtime.NumCPU()
		}

		ch := make(chan result)
		done := make(chan interface{})
		defer close(done)

		paths, errc := walkDir(done, *source, validExtensions)

		var wg sync.WaitGroup
		wg.Add(*workers)
		for i := 0; i < *workers; i++ {
			go func() {
				defer wg.Done()
				consumer(done, paths, *destination, proc, ch)
			}()
		}

		go func() {
			defer close(ch)
			wg.Wait()
		}()

		for res := range ch {
			printStatus(res.path, res.err)
		}

		if err := <-errc; err != nil {
			fmt.Fprint(os.Stderr, utils.DecorateText(err.Error(), utils.ErrorMessage))
		}

	case mode.IsRegular() || mode&os.ModeNamedPipe != 0:
		ext := filepath.Ext(*destination)
		if !isValidExtension(ext, validExtensions) && *destination != pipeName {
			log.Fatal(utils.DecorateText(fmt.Sprintf("%v file type not supported", ext), utils.ErrorMessage))
		}

		err := processor(*source, *destination, proc)
		printStatus(*destination, err)
	}
	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
		utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
}

// walkDir starts a goroutine to walk the specified directory tree in a
// recursive manner and sends the path of each supported image file on
// the returned channel. It terminates when the done channel is closed.
func walkDir(
	done <-chan interface{},
	src string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		defer close(pathChan)

		errChan <- filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.Mode().IsRegular() {
				return nil
			}
			if !isValidExtension(filepath.Ext(info.Name()), srcExts) {
				return nil
			}

			select {
			case <-done:
				return errors.New("directory walk cancelled")
			case pathChan <- path:
			}
			return nil
		})
	}()
	return pathChan, errChan
}

// consumer reads the path names from the paths channel, runs the
// resizing processor against each source image and sends the results
// on a new channel.
func consumer(
	done <-chan interface{},
	paths <-chan string,
	dest string,
	proc *seamcut.Processor,
	res chan<- result,
) {
	for src := range paths {
		dst := filepath.Join(dest, filepath.Base(src))
		err := processor(src, dst, proc)

		select {
		case <-done:
			return
		case res <- result{
			path: src,
			err:  err,
		}:
		}
	}
}

// processor calls the resizer method over the source image and
// returns the error in case one exists, otherwise nil.
func processor(in, out string, proc *seamcut.Processor) error {
	src, dst, err := pathToFile(in, out)
	if err != nil {
		return err
	}
	defer func() {
		if f, ok := src.(*os.File); ok {
			f.Close()
		}
		if f, ok := dst.(*os.File); ok {
			f.Close()
		}
	}()

	// Capture CTRL-C and restore the cursor visibility back.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		spinner.RestoreCursor()
		os.Exit(1)
	}()

	spinner.Start()
	err = proc.Process(src, dst)
	spinner.StopMsg = fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ SEAMCUT", utils.StatusMessage),
		utils.DecorateText("is resizing the image... ✔", utils.DefaultMessage))
	spinner.Stop()

	if err == nil && proc.Debug && out != pipeName {
		err = saveSeamOverlay(proc, out)
	}
	return err
}

// saveSeamOverlay writes the debug seam overlay next to the output file.
func saveSeamOverlay(proc *seamcut.Processor, out string) error {
	overlay := proc.SeamOverlay()
	if overlay == nil {
		return nil
	}

	name := strings.TrimSuffix(out, filepath.Ext(out)) + "_seams.png"
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("unable to create the seam overlay file: %w", err)
	}
	defer f.Close()

	return png.Encode(f, overlay)
}

// pathToFile converts the source and destination paths to readable and writable files.
func pathToFile(in, out string) (io.Reader, io.Writer, error) {
	var (
		src io.Reader
		dst io.Writer
		err error
	)
	// Check if the source path is a local image or URL.
	if utils.IsValidUrl(in) {
		src = imgurl
	} else {
		// Check if the source is a pipe name or a regular file.
		if in == pipeName {
			if term.IsTerminal(int(os.Stdin.Fd())) {
				return nil, nil, errors.New("`-` should be used with a pipe for stdin")
			}
			src = os.Stdin
		} else {
			src, err = os.Open(in)
			if err != nil {
				return nil, nil, fmt.Errorf("unable to open the source file: %w", err)
			}
		}
	}

	// Check if the destination is a pipe name or a regular file.
	if out == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdout")
		}
		dst = os.Stdout
	} else {
		dst, err = os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to create the destination file: %w", err)
		}
	}
	return src, dst, nil
}

// printStatus displays the relevant information about the image resizing process.
func printStatus(fname string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr,
			utils.DecorateText("\nError resizing the image: %s", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err.Error()), utils.DefaultMessage),
		)
		os.Exit(1)
	}
	if fname != pipeName {
		fmt.Fprintf(os.Stderr, "\nThe resized image has been saved as: %s %s\n",
			utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
}

// isValidExtension checks for the supported extensions.
func isValidExtension(ext string, extensions []string) bool {
	for _, ex := range extensions {
		if ex == ext {
			return true
		}
	}
	return false
}
