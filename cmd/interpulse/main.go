package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/ianbohannon/WAAM/gcode"
	"github.com/ianbohannon/WAAM/interpulse"
	"github.com/ianbohannon/WAAM/sender"
	"github.com/ianbohannon/WAAM/spjs"
)

func main() {
	log.SetFlags(log.Lshortfile)

	distance := flag.Float64("distance", interpulse.DefaultTriggerDistance, "Extruding travel, in mm, between fan pulses.")
	dwell := flag.Int("dwell", interpulse.DefaultDwellTime, "Fan-on time per pulse, in ms.")
	keepTemps := flag.Bool("keep-temps", false, "Keep M104/M109 lines instead of stripping them.")
	outPath := flag.String("o", "", "Write here instead of rewriting the input in place.")
	wait := flag.Bool("wait", false, "Prompt for Enter before exiting.")
	serve := flag.String("serve", "", "Serve the HTTP API on this address instead of processing a file.")
	send := flag.Bool("send", false, "Stream the rewritten file to the machine afterwards.")
	spjsURL := flag.String("spjs", "", "Websocket URL of an SPJS server to send through.")
	port := flag.String("port", "/dev/ttyUSB0", "Port path (or name if using SPJS).")
	baud := flag.Int("baud", 115200, "Baud rate for direct serial sending.")
	flag.Parse()

	cfg := interpulse.Config{
		TriggerDistance: *distance,
		DwellTime:       *dwell,
		KeepTemps:       *keepTemps,
	}

	if *serve != "" {
		api := newAPI(cfg)
		log.Println("Listening on", *serve)
		err := http.ListenAndServe(*serve, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "*")
			log.Printf("%s %s - %s", req.Method, req.URL.Path, req.RemoteAddr)
			api.ServeHTTP(w, req)
		}))
		log.Fatal(err)
	}

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <gcode-file>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
		exit(2, *wait)
	}

	path := flag.Arg(0)
	fmt.Println("Processing G-code file:", path)

	cfg.OnTrigger = func(tr interpulse.Trigger) {
		fmt.Printf("Triggered at X%.2f Y%.2f\n", tr.X, tr.Y)
	}

	out, err := processFile(path, *outPath, cfg)
	if err != nil {
		log.Println("ERROR:", err)
		exit(1, *wait)
	}
	fmt.Println("Done.")

	if *send {
		if err = sendFile(out, *spjsURL, *port, *baud); err != nil {
			log.Println("ERROR: send:", err)
			exit(1, *wait)
		}
	}

	exit(0, *wait)
}

func exit(code int, wait bool) {
	if wait {
		fmt.Print("Press Enter to exit...")
		bufio.NewReader(os.Stdin).ReadString('\n')
	}
	os.Exit(code)
}

func processFile(path, outPath string, cfg interpulse.Config) ([]byte, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	out, err := interpulse.Process(data, cfg)
	if err != nil {
		return nil, err
	}

	if outPath == "" {
		outPath = path
	}
	return out, writeAtomic(outPath, out)
}

// writeAtomic replaces path with data via a temp file and rename, so
// a failure partway through never clobbers the original.
func writeAtomic(path string, data []byte) error {
	tmp, err := ioutil.TempFile(filepath.Dir(path), ".interpulse-")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	if fi, err := os.Stat(path); err == nil {
		os.Chmod(tmp.Name(), fi.Mode())
	} else {
		os.Chmod(tmp.Name(), 0644)
	}
	return os.Rename(tmp.Name(), path)
}

func sendFile(out []byte, spjsURL, port string, baud int) error {
	var snd sender.Sender
	if spjsURL != "" {
		snd = sender.NewSPJS(spjs.NewSPJS(spjsURL), port)
	} else {
		s, err := sender.OpenSerial(port, baud)
		if err != nil {
			return err
		}
		defer s.Close()
		snd = s
	}

	return snd.Send(gcode.NewScanner(bytes.NewReader(out)))
}
