package geo

// Built-in Greek reference sets. These cover the regions the scrape stage
// targets; refload can replace them with YAML or shapefile data.

var defaultAirports = []Point{
	{Code: "ATH", Name: "Athens International", Lat: 37.9364, Lng: 23.9445, YearRound: true},
	{Code: "SKG", Name: "Thessaloniki Makedonia", Lat: 40.5197, Lng: 22.9709, YearRound: true},
	{Code: "HER", Name: "Heraklion Kazantzakis", Lat: 35.3397, Lng: 25.1803, YearRound: true},
	{Code: "CHQ", Name: "Chania Daskalogiannis", Lat: 35.5317, Lng: 24.1497, YearRound: true},
	{Code: "CFU", Name: "Corfu Kapodistrias", Lat: 39.6019, Lng: 19.9117, YearRound: false},
	{Code: "EFL", Name: "Cephalonia Anna Pollatou", Lat: 38.1201, Lng: 20.5005, YearRound: false},
	{Code: "KVA", Name: "Kavala Megas Alexandros", Lat: 40.9133, Lng: 24.6192, YearRound: false},
	{Code: "VOL", Name: "Volos Nea Anchialos", Lat: 39.2196, Lng: 22.7943, YearRound: false},
	{Code: "JSI", Name: "Skiathos Papadiamantis", Lat: 39.1771, Lng: 23.5037, YearRound: false},
	{Code: "KLX", Name: "Kalamata International", Lat: 37.0683, Lng: 22.0255, YearRound: false},
	{Code: "ZTH", Name: "Zakynthos Solomos", Lat: 37.7509, Lng: 20.8843, YearRound: false},
}

var defaultBeaches = []Point{
	{Name: "Paleokastritsa", Lat: 39.6713, Lng: 19.7108},
	{Name: "Glyfada Beach Corfu", Lat: 39.5944, Lng: 19.8412},
	{Name: "Sidari", Lat: 39.7899, Lng: 19.7087},
	{Name: "Myrtos", Lat: 38.3419, Lng: 20.5367},
	{Name: "Elafonissi", Lat: 35.2717, Lng: 23.5413},
	{Name: "Balos", Lat: 35.5804, Lng: 23.5886},
	{Name: "Falassarna", Lat: 35.4946, Lng: 23.5710},
	{Name: "Kavala Batis", Lat: 40.9214, Lng: 24.3849},
	{Name: "Ammolofoi", Lat: 40.8623, Lng: 24.2460},
	{Name: "Kassandra Possidi", Lat: 39.9604, Lng: 23.3663},
	{Name: "Sithonia Kavourotrypes", Lat: 40.1756, Lng: 23.8487},
	{Name: "Mylopotamos Pelion", Lat: 39.3121, Lng: 23.1800},
	{Name: "Agios Ioannis Pelion", Lat: 39.4099, Lng: 23.1564},
	{Name: "Alonnisos Chrisi Milia", Lat: 39.1751, Lng: 23.9005},
	{Name: "Athens Riviera Vouliagmeni", Lat: 37.8087, Lng: 23.7811},
	{Name: "Kalamata Beach", Lat: 37.0239, Lng: 22.1201},
	{Name: "Perea Thessaloniki", Lat: 40.5000, Lng: 22.9241},
}

var defaultCities = []Point{
	{Name: "Athens", Lat: 37.9838, Lng: 23.7275, Population: 3154000},
	{Name: "Thessaloniki", Lat: 40.6401, Lng: 22.9444, Population: 1110000},
	{Name: "Heraklion", Lat: 35.3387, Lng: 25.1442, Population: 174000},
	{Name: "Chania", Lat: 35.5138, Lng: 24.0180, Population: 110000},
	{Name: "Volos", Lat: 39.3622, Lng: 22.9420, Population: 145000},
	{Name: "Kavala", Lat: 40.9396, Lng: 24.4069, Population: 70000},
	{Name: "Serres", Lat: 41.0856, Lng: 23.5484, Population: 76000},
	{Name: "Drama", Lat: 41.1528, Lng: 24.1472, Population: 60000},
	{Name: "Corfu Town", Lat: 39.6243, Lng: 19.9217, Population: 40000},
	{Name: "Argostoli", Lat: 38.1737, Lng: 20.4897, Population: 14000},
	{Name: "Kalamata", Lat: 37.0389, Lng: 22.1142, Population: 70000},
	{Name: "Patras", Lat: 38.2466, Lng: 21.7346, Population: 215000},
}

// DefaultAirports returns the built-in airport reference set.
func DefaultAirports() *ReferenceSet { return NewReferenceSet(KindAirport, defaultAirports) }

// DefaultBeaches returns the built-in beach reference set.
func DefaultBeaches() *ReferenceSet { return NewReferenceSet(KindBeach, defaultBeaches) }

// DefaultCities returns the built-in population center reference set.
func DefaultCities() *ReferenceSet { return NewReferenceSet(KindCity, defaultCities) }
