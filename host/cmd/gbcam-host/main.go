package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/golang/glog"

	"gbcam/host/bridge"
	"gbcam/host/camera"
	"gbcam/host/serial"
)

var (
	device  = flag.String("device", "", "Serial device path (autodetected when empty)")
	baud    = flag.Int("baud", 115200, "Baud rate (ignored for USB CDC)")
	profile = flag.String("profile", ".gbcam.yaml", "Register profile")
	mqttURL = "mqtt://localhost:1883/gbcam"
)

func init() {
	if val := os.Getenv("GBCAM_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL, the path is the topic prefix")
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <command> [args]\n\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  detect                  print the camera's serial device")
	fmt.Fprintln(os.Stderr, "  upload                  send the profile registers and restart")
	fmt.Fprintln(os.Stderr, "  reset                   restore device defaults and restart")
	fmt.Fprintln(os.Stderr, "  save                    write the default profile if none exists")
	fmt.Fprintln(os.Stderr, "  capture [-n N] [-out D] save frames as PNG")
	fmt.Fprintln(os.Stderr, "  bridge                  publish frames to MQTT")
	fmt.Fprintln(os.Stderr, "\nFlags:")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	defer glog.Flush()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	var err error
	switch cmd, args := flag.Arg(0), flag.Args()[1:]; cmd {
	case "detect":
		err = runDetect()
	case "upload":
		err = runUpload()
	case "reset":
		err = runReset()
	case "save":
		err = runSave()
	case "capture":
		err = runCapture(args)
	case "bridge":
		err = runBridge()
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		glog.Exitf("%s: %v", flag.Arg(0), err)
	}
}

func openPort() (serial.Port, error) {
	path := *device
	if path == "" {
		detected, err := serial.Detect()
		if err != nil {
			return nil, err
		}
		glog.Infof("using %s", detected)
		path = detected
	}
	cfg := serial.DefaultConfig(path)
	cfg.Baud = *baud
	return serial.Open(cfg)
}

// loadProfile falls back to the device defaults when the file is missing
func loadProfile() (camera.Profile, error) {
	p, err := camera.LoadProfile(*profile)
	if errors.Is(err, fs.ErrNotExist) {
		glog.Infof("no profile at %s, using defaults", *profile)
		return camera.DefaultProfile(), nil
	}
	return p, err
}

func runDetect() error {
	path, err := serial.Detect()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func runUpload() error {
	p, err := loadProfile()
	if err != nil {
		return err
	}
	port, err := openPort()
	if err != nil {
		return err
	}
	defer port.Close()

	raw := p.Registers().Raw()
	if err := camera.NewClient(port).UploadRaw(raw); err != nil {
		return err
	}
	glog.Infof("uploaded % x", raw[:])
	return nil
}

func runReset() error {
	port, err := openPort()
	if err != nil {
		return err
	}
	defer port.Close()

	c := camera.NewClient(port)
	if err := c.ResetRegisters(); err != nil {
		return err
	}
	return c.Restart()
}

func runSave() error {
	if _, err := os.Stat(*profile); err == nil {
		return fmt.Errorf("%s already exists", *profile)
	}
	return camera.SaveProfile(*profile, camera.DefaultProfile())
}

func runCapture(args []string) error {
	flags := flag.NewFlagSet("capture", flag.ExitOnError)
	count := flags.Int("n", 1, "Number of frames to save")
	outDir := flags.String("out", ".", "Output directory")
	flags.Parse(args)

	p, err := loadProfile()
	if err != nil {
		return err
	}
	opts := p.ImageOptions()

	port, err := openPort()
	if err != nil {
		return err
	}
	defer port.Close()
	port.Flush()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	reader := camera.NewFrameReader(port)
	for i := 0; i < *count; i++ {
		frame, err := reader.Next()
		if err != nil {
			return err
		}
		name := filepath.Join(*outDir, fmt.Sprintf("frame-%04d.png", frame.Seq))
		if err := writePNG(name, frame, opts); err != nil {
			return err
		}
		glog.Infof("saved %s (%.1f fps)", name, reader.FPS())
	}
	return nil
}

func writePNG(name string, frame *camera.Frame, opts camera.ImageOptions) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := frame.WritePNG(f, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runBridge() error {
	p, err := loadProfile()
	if err != nil {
		return err
	}

	b, client, err := bridge.Dial(mqttURL)
	if err != nil {
		return err
	}
	defer client.Disconnect(250)

	port, err := openPort()
	if err != nil {
		return err
	}
	defer port.Close()

	if err := b.PublishRegisters(p.Registers()); err != nil {
		glog.Warningf("register snapshot not published: %v", err)
	}

	reader := camera.NewFrameReader(port)
	for {
		frame, err := reader.Next()
		if err != nil {
			return err
		}
		if err := b.PublishFrame(frame.Data); err != nil {
			glog.Warningf("frame %d not published: %v", frame.Seq, err)
		}
	}
}
