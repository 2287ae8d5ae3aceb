package catalog

var hotels = []Hotel{
	{
		ID: "hotel-alfama", Name: "Alfama Riverside Suites", Location: "Lisbon, Portugal",
		Image: "https://images.example.com/hotels/alfama.jpg", Rating: 4.6,
		PricePerNight: 145, Currency: "EUR", Provider: "Booking.com",
		RoomTypes: []string{"Standard", "River View", "Suite"},
		Amenities: []string{"Free WiFi", "Breakfast", "Rooftop terrace"},
	},
	{
		ID: "hotel-shinjuku", Name: "Shinjuku Sky Hotel", Location: "Tokyo, Japan",
		Image: "https://images.example.com/hotels/shinjuku.jpg", Rating: 4.4,
		PricePerNight: 210, Currency: "USD", Provider: "Expedia",
		RoomTypes: []string{"Single", "Double", "Twin"},
		Amenities: []string{"Free WiFi", "Gym", "Onsen"},
	},
	{
		ID: "hotel-santorini", Name: "Caldera Cliff Villas", Location: "Santorini, Greece",
		Image: "https://images.example.com/hotels/santorini.jpg", Rating: 4.9,
		PricePerNight: 390, Currency: "EUR", Provider: "Airbnb",
		RoomTypes: []string{"Villa", "Cave Suite"},
		Amenities: []string{"Private pool", "Sea view", "Breakfast"},
	},
}

var cars = []Car{
	{
		ID: "car-corolla", Model: "Toyota Corolla", Provider: "Hertz", Location: "Lisbon Airport",
		Image: "https://images.example.com/cars/corolla.jpg", Transmission: "automatic", Seats: 5,
		PricePerDay: 42, Currency: "EUR", Features: []string{"Air conditioning", "Bluetooth"},
	},
	{
		ID: "car-wrangler", Model: "Jeep Wrangler", Provider: "Avis", Location: "Denver Airport",
		Image: "https://images.example.com/cars/wrangler.jpg", Transmission: "automatic", Seats: 4,
		PricePerDay: 89, Currency: "USD", Features: []string{"4x4", "Roof rack"},
	},
	{
		ID: "car-fiat500", Model: "Fiat 500", Provider: "Europcar", Location: "Rome Termini",
		Image: "https://images.example.com/cars/fiat500.jpg", Transmission: "manual", Seats: 4,
		PricePerDay: 31, Currency: "EUR", Features: []string{"Compact", "Fuel efficient"},
	},
}

var flights = []Flight{
	{
		ID: "flight-tp1351", Airline: "TAP Air Portugal", FlightNumber: "TP1351",
		From: "LIS", To: "OPO", DepartsAt: "08:30", DurationMinutes: 55,
		Class: "economy", Price: 79, Currency: "EUR",
		Image: "https://images.example.com/airlines/tap.png",
	},
	{
		ID: "flight-jl5", Airline: "Japan Airlines", FlightNumber: "JL5",
		From: "JFK", To: "HND", DepartsAt: "13:25", DurationMinutes: 845,
		Class: "business", Price: 3890, Currency: "USD",
		Image: "https://images.example.com/airlines/jal.png",
	},
	{
		ID: "flight-a3651", Airline: "Aegean Airlines", FlightNumber: "A3651",
		From: "ATH", To: "JTR", DepartsAt: "17:10", DurationMinutes: 45,
		Class: "economy", Price: 96, Currency: "EUR",
		Image: "https://images.example.com/airlines/aegean.png",
	},
}

var activities = []Activity{
	{
		ID: "activity-fado", Title: "Fado Night in Alfama", Provider: "GetYourGuide",
		Location: "Lisbon, Portugal", Image: "https://images.example.com/activities/fado.jpg",
		Duration: "3h", Rating: 4.8, Price: 55, Currency: "EUR",
		Features: []string{"Dinner included", "Live music"},
	},
	{
		ID: "activity-sushi", Title: "Tsukiji Sushi Workshop", Provider: "Viator",
		Location: "Tokyo, Japan", Image: "https://images.example.com/activities/sushi.jpg",
		Duration: "2.5h", Rating: 4.7, Price: 120, Currency: "USD",
		Features: []string{"Small group", "Market tour"},
	},
	{
		ID: "activity-sail", Title: "Caldera Sunset Sail", Provider: "Klook",
		Location: "Santorini, Greece", Image: "https://images.example.com/activities/sail.jpg",
		Duration: "5h", Rating: 4.9, Price: 140, Currency: "EUR",
		Features: []string{"Snorkelling", "BBQ on board"},
	},
}

var destinations = []Place{
	{ID: "dest-lisbon", Name: "Lisbon", Location: "Portugal", Image: "https://images.example.com/dest/lisbon.jpg", Rating: 4.7},
	{ID: "dest-kyoto", Name: "Kyoto", Location: "Japan", Image: "https://images.example.com/dest/kyoto.jpg", Rating: 4.9},
	{ID: "dest-cusco", Name: "Cusco", Location: "Peru", Image: "https://images.example.com/dest/cusco.jpg", Rating: 4.6},
}

var attractions = []Place{
	{ID: "attr-belem", Name: "Belém Tower", Location: "Lisbon, Portugal", Image: "https://images.example.com/attr/belem.jpg", Rating: 4.5, Price: 8},
	{ID: "attr-fushimi", Name: "Fushimi Inari Shrine", Location: "Kyoto, Japan", Image: "https://images.example.com/attr/fushimi.jpg", Rating: 4.9},
	{ID: "attr-machu", Name: "Machu Picchu", Location: "Cusco, Peru", Image: "https://images.example.com/attr/machu.jpg", Rating: 5, Price: 45},
}
