// Command rf433 is a demo CLI wiring the frontend, runtime, and built-in
// decoders together: connect to an rtl_tcp server, dispatch every received
// burst through the registered decoders, and log whatever events they
// emit. It follows the teacher's Config/init/main shape (flag-parsed
// Config, package-level init, a thin main).
package main

import (
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/merbanan/rtl-433-sub002/decoder"
	"github.com/merbanan/rtl-433-sub002/devices"
	"github.com/merbanan/rtl-433-sub002/event"
	"github.com/merbanan/rtl-433-sub002/frontend"
	"github.com/merbanan/rtl-433-sub002/metrics"
	"github.com/merbanan/rtl-433-sub002/runtime"
)

// Config is the command's flag-parsed configuration.
type Config struct {
	serverAddr   string
	centerFreq   uint
	sampleRate   uint
	overridePath string
	metricsAddr  string
	timeLimit    time.Duration

	ServerAddr *net.TCPAddr
}

var config Config

func (c *Config) Parse() error {
	flag.StringVar(&c.serverAddr, "server", "127.0.0.1:1234", "address of rtl_tcp instance")
	flag.UintVar(&c.centerFreq, "centerfreq", 433920000, "center frequency to receive on")
	flag.UintVar(&c.sampleRate, "samplerate", 250000, "sample rate in Hz")
	flag.StringVar(&c.overridePath, "overrides", "", "path to a YAML decoder-override list")
	flag.StringVar(&c.metricsAddr, "metrics", "", "address to serve Prometheus metrics on, empty to disable")
	flag.DurationVar(&c.timeLimit, "duration", 0, "time to run for, 0 for infinite")

	flag.Parse()

	addr, err := net.ResolveTCPAddr("tcp", c.serverAddr)
	if err != nil {
		return err
	}
	c.ServerAddr = addr
	return nil
}

func init() {
	log.SetFlags(log.Lshortfile)
	if err := config.Parse(); err != nil {
		log.Fatal("error parsing flags:", err)
	}
}

func logEvent(rec event.Record) {
	model, _ := rec.Get("model")
	log.Printf("%s %+v", model.Str, rec.Fields)
}

func main() {
	reg := prometheus.NewRegistry()
	recorder := metrics.NewRecorder(reg)

	rt := runtime.New(logEvent)
	rt.Dispatcher.Stats = recorder
	rt.Dispatcher.Warn = func(name string, rate uint32) {
		log.Printf("decoder %s cannot run at sample rate %d", name, rate)
	}

	if config.overridePath != "" {
		data, err := os.ReadFile(config.overridePath)
		if err != nil {
			log.Fatal("error reading overrides:", err)
		}
		if err := rt.LoadOverrides(data); err != nil {
			log.Fatal("error parsing overrides:", err)
		}
	}

	for _, dev := range builtinDevices() {
		rt.Register(dev)
	}

	if config.metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			log.Fatal(http.ListenAndServe(config.metricsAddr, mux))
		}()
	}

	adapter, err := frontend.NewAdapter(frontend.Config{
		ServerAddr:   config.ServerAddr,
		SampleRate:   uint32(config.sampleRate),
		CenterFreq:   uint32(config.centerFreq),
		OffsetTuning: true,
		AutoGain:     true,
	})
	if err != nil {
		log.Fatal("error connecting to rtl_tcp:", err)
	}
	defer adapter.Close()

	var deadline <-chan time.Time
	if config.timeLimit != 0 {
		deadline = time.After(config.timeLimit)
	}

	log.Println("running...")
	for {
		select {
		case <-deadline:
			log.Println("time limit reached")
			return
		default:
			pd, err := adapter.NextBurst()
			if err != nil {
				log.Fatal("error reading burst:", err)
			}
			rt.Dispatch(pd, decoder.FamilyOOK)
		}
	}
}

func builtinDevices() []decoder.Device {
	return []decoder.Device{
		devices.Bresser3CH{},
		devices.AmbientWeatherWH31E{},
		devices.GenericRemote{},
		devices.HoneywellContact{},
		devices.SteelmateTPMS{},
		devices.OregonV1{},
		devices.MBus3of6{},
	}
}

