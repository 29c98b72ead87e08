package main

import (
	"encoding/json"
	"io/ioutil"
	"log"
	"net/http"
	"strconv"

	sse "github.com/alexandrevicenzi/go-sse"
	"github.com/gorilla/mux"

	"github.com/ianbohannon/WAAM/interpulse"
)

type api struct {
	http.Handler
	cfg interpulse.Config
	sse *sse.Server
}

func newAPI(cfg interpulse.Config) *api {
	r := mux.NewRouter()

	a := &api{
		Handler: r,
		cfg:     cfg,
		sse: sse.NewServer(&sse.Options{
			Logger: log.New(ioutil.Discard, "", 0),
		}),
	}

	r.HandleFunc("/api/process", a.process).Methods("POST")
	r.PathPrefix("/events/").Handler(a.sse)

	return a
}

// process rewrites the G-code document in the request body. Pulse
// placements are streamed to /events/triggers while it runs.
func (a *api) process(w http.ResponseWriter, req *http.Request) {
	data, err := ioutil.ReadAll(req.Body)
	if err != nil {
		return
	}

	cfg := a.cfg
	q := req.URL.Query()
	if s := q.Get("distance"); s != "" {
		cfg.TriggerDistance, err = strconv.ParseFloat(s, 64)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if s := q.Get("dwell"); s != "" {
		cfg.DwellTime, err = strconv.Atoi(s)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if q.Get("keepTemps") == "1" {
		cfg.KeepTemps = true
	}

	cfg.OnTrigger = func(tr interpulse.Trigger) {
		data, err := json.Marshal(tr)
		if err != nil {
			log.Printf("ERROR: marshal json: %+v", err)
			return
		}
		a.sse.SendMessage("/events/triggers", sse.SimpleMessage(string(data)))
	}

	out, err := interpulse.Process(data, cfg)
	if err != nil {
		log.Printf("ERROR: process: %+v", err)
		http.Error(w, err.Error(), 500)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write(out)
}
