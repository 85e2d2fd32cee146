package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/nandanugg/kitty-compass/module/core/domain"
	"github.com/nandanugg/kitty-compass/module/core/landmark"
)

type locationMessage struct {
	UserID    string  `json:"user_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp int64   `json:"timestamp"`
}

func randomLat() float64 {
	return -90 + rand.Float64()*180
}

func randomLon() float64 {
	return -180 + rand.Float64()*360
}

func loadPlaces(path string) []domain.Place {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("read landmarks: %v", err)
		return nil
	}
	return landmark.Load(data, landmark.WithLogf(log.Printf)).Places()
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <interval_seconds>\n", os.Args[0])
		os.Exit(1)
	}

	intervalSec, err := strconv.Atoi(os.Args[1])
	if err != nil || intervalSec <= 0 {
		fmt.Fprintf(os.Stderr, "error: interval must be a positive integer\n")
		os.Exit(1)
	}

	broker := "tcp://localhost:1883"
	if v := os.Getenv("MQTT_BROKER"); v != "" {
		broker = v
	}

	landmarksPath := "data/landmarks.json"
	if v := os.Getenv("LANDMARKS_SOURCE"); v != "" {
		landmarksPath = v
	}
	places := loadPlaces(landmarksPath)

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("kitty-compass-mock-wearable")

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("mqtt connect: %v", token.Error())
	}
	defer client.Disconnect(250)

	userPool := make([]string, 5)
	for i := range userPool {
		userPool[i] = uuid.NewString()
	}

	log.Printf("connected to %s, publishing every %ds with %d landmarks...", broker, intervalSec, len(places))
	log.Printf("user pool: %v", userPool)

	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		uid := userPool[rand.Intn(len(userPool))]

		var lat, lon float64
		// 30% chance to walk past a known landmark
		if len(places) > 0 && rand.Float64() < 0.3 {
			p := places[rand.Intn(len(places))]
			lat = p.Lat + (rand.Float64()-0.5)*0.2 // ~10km drift
			lon = p.Lon + (rand.Float64()-0.5)*0.2
		} else {
			lat = randomLat()
			lon = randomLon()
		}

		msg := locationMessage{
			UserID:    uid,
			Latitude:  lat,
			Longitude: lon,
			Timestamp: time.Now().Unix(),
		}

		payload, _ := json.Marshal(msg)
		topic := fmt.Sprintf("/wearable/user/%s/location", uid)

		token := client.Publish(topic, 1, false, payload)
		token.Wait()

		log.Printf("published to %s: %s", topic, payload)
	}
}
