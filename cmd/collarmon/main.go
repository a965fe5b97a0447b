package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/robotalks/collar.go/pkg/l1/comm/mqtt"
	"github.com/robotalks/collar.go/pkg/l1/msgs"
)

var (
	mqttURL = "mqtt://localhost:1883/collar/"
)

func init() {
	if val := os.Getenv("COLLAR_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q, err := mqtt.NewPubSubFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}
	if token := q.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalln(token.Error())
	}

	q.Sub("#", mqtt.Handler(func(topic string, payload []byte) {
		if strings.HasSuffix(topic, mqtt.TopicMeta) {
			log.Printf("%s: %s", topic, string(payload))
			return
		}
		typed, err := msgs.DecodeTyped(payload)
		if err != nil {
			log.Printf("%s: bad message: %v", topic, err)
			return
		}
		msg, err := typed.Decode()
		if err != nil {
			log.Printf("%s: decode error: (type_id=%x) %v", topic, typed.TypeId, err)
			return
		}
		log.Printf("%s: #%d [%s] %s", topic, typed.Sequence, msgs.NameOf(msg),
			msg.(msgs.SerializableMessage).Serializable().String())
	}))
	select {}
}
