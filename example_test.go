package jsonype_test

import (
	"encoding/json"
	"fmt"

	"github.com/volkerstampa/jsonype"
)

type Address struct {
	City string `json:"city"`
	Zip  string `json:"zip"`
}

type Person struct {
	Name    string  `json:"name"`
	Age     *int    `json:"age"`
	Address Address `json:"address"`
}

func Example() {
	doc := `{
		"name": "Joe",
		"age": 41,
		"address": {"city": "Berlin", "zip": "10115"}
	}`
	var js jsonype.Value
	if err := json.Unmarshal([]byte(doc), &js); err != nil {
		panic(err)
	}

	tj := jsonype.Default()
	person, err := jsonype.FromJSONAs[Person](tj, js)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%s (%d) lives in %s\n", person.Name, *person.Age, person.Address.City)
	// Output: Joe (41) lives in Berlin
}

func ExampleTypedJSON_FromJSON_conversionError() {
	tj := jsonype.Default()

	_, err := jsonype.FromJSONAs[Person](tj, jsonype.Object{
		"name":    "Joe",
		"address": jsonype.Object{"city": 5, "zip": "10115"},
	})

	fmt.Println(err)
	// Output: cannot convert 5 (type int) at $.address.city to string: no suitable converter registered, use TypedJSON.Append or TypedJSON.Prepend to register one
}

func ExampleTypedJSON_ToJSON() {
	tj := jsonype.Default()
	age := 41
	js, err := tj.ToJSON(Person{
		Name:    "Joe",
		Age:     &age,
		Address: Address{City: "Berlin", Zip: "10115"},
	})
	if err != nil {
		panic(err)
	}

	out, err := json.Marshal(js)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(out))
	// Output: {"address":{"city":"Berlin","zip":"10115"},"age":41,"name":"Joe"}
}
