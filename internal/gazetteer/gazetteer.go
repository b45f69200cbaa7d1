package gazetteer

// Default location shown before the user picks anything.
const (
	DefaultProvince = "Guayas"
	DefaultCity     = "Guayaquil"
)

var provinceOrder = []string{
	"Azuay",
	"Bolívar",
	"Cañar",
	"Chimborazo",
	"Cotopaxi",
	"El Oro",
	"Esmeraldas",
	"Galápagos",
	"Guayas",
	"Imbabura",
	"Loja",
	"Los Ríos",
	"Manab",
	"Morona Santiago",
	"Napo",
	"Orellana",
	"Pastaza",
	"Pichincha",
	"Santa Elena",
	"Santo Domingo de los Tsáchilas",
	"Sucumbíos",
	"Tungurahua",
	"Zamora Chinchipe",
}

// ecuadorProvinces maps each province to its cities. The first city of each
// list is the one selected when the province changes.
var ecuadorProvinces = map[string][]string{
	"Azuay":                          {"Cuenca", "Gualaceo", "Paute", "Sigsig", "Girón", "San Fernando", "Santa Isabel", "Pucar", "Nabón"},
	"Bolívar":                        {"Guaranda", "San Miguel", "Caluma", "Chillanes", "Echeandía", "Chimbo"},
	"Cañar":                          {"Azogues", "Cañar", "Biblián", "La Troncal"},
	"Chimborazo":                     {"Riobamba", "Guano", "Alausí", "Chambo", "Colta", "Penipe", "Pallatanga", "Guamote", "Chunchi", "Cumandá"},
	"Cotopaxi":                       {"Latacunga", "Saquisilí", "Pujilí", "Salcedo", "Sigchos", "La Maná"},
	"El Oro":                         {"Machala", "Santa Rosa", "Pasaje", "Huaquillas", "Zaruma", "Portovelo", "El Guabo", "Arenillas", "Atahualpa", "Balsas", "Chilla", "Marcabelí"},
	"Esmeraldas":                     {"Esmeraldas", "Atacames", "Quinindé", "San Lorenzo", "Muisne", "La Concordia", "Rioverde"},
	"Galápagos":                      {"Puerto Baquerizo Moreno", "Puerto Ayora", "Puerto Villamil"},
	"Guayas":                         {"Guayaquil", "Durán", "Samborondón", "Milagro", "Daule", "Playas", "El Triunfo", "Naranjal", "Balao", "Balzar", "Colimes", "Palestina", "Pedro Carbo", "Salitre", "Santa Lucía", "Yaguachi Nuevo"},
	"Imbabura":                       {"Ibarra", "Otavalo", "Cotacachi", "Atuntaqui", "Pimampiro", "Urcuquí"},
	"Loja":                           {"Loja", "Catamayo", "Macará", "Cariamanga", "Celica", "Saraguro", "Sozoranga", "Gonzanamá", "Quilanga", "Espíndola"},
	"Los Ríos":                       {"Babahoyo", "Quevedo", "Ventanas", "Vinces", "Buena Fe", "Puebloviejo", "Montalvo", "Mocache", "Palenque", "Quinsaloma"},
	"Manab":                          {"Portoviejo", "Manta", "Chone", "Bahía de Caráquez", "Jipijapa", "Montecristi", "El Carmen", "Sucre", "Tosagua", "Santa Ana", "Paján", "Pedernales", "San Vicente", "Bolívar", "Jama", "Jaramijó", "Junín", "Olmedo", "Flavio Alfaro"},
	"Morona Santiago":                {"Macas", "Gualaquiza", "Sucúa", "Limón Indanza", "Santiago", "Palora", "Huamboya", "San Juan Bosco", "Taisha", "Logroño"},
	"Napo":                           {"Tena", "Archidona", "El Chaco", "Carlos Julio Arosemena Tola", "Baeza"},
	"Orellana":                       {"Puerto Francisco de Orellana", "La Joya de los Sachas", "Loreto", "Nuevo Rocafuerte"},
	"Pastaza":                        {"Puyo", "Mera", "Santa Clara", "Arajuno"},
	"Pichincha":                      {"Quito", "Cayambe", "Rumiñahui", "Mejía", "Pedro Moncayo", "Pedro Vicente Maldonado", "San Miguel de los Bancos", "Puerto Quito"},
	"Santa Elena":                    {"Santa Elena", "La Libertad", "Salinas"},
	"Santo Domingo de los Tsáchilas": {"Santo Domingo", "La Concordia"},
	"Sucumbíos":                      {"Nueva Loja", "Shushufindi", "Lago Agrio", "Cuyabeno", "Putumayo", "Sucumbíos"},
	"Tungurahua":                     {"Ambato", "Baños de Agua Santa", "Cevallos", "Mocha", "Patate", "Pelileo", "Quero", "Tisaleo"},
	"Zamora Chinchipe":               {"Zamora", "Yantzaza", "Nangaritza", "Centinela del Cóndor", "Palanda", "Chinchipe", "El Pangui", "Paquisha"},
}

// Provinces returns every province name in display order.
func Provinces() []string {
	out := make([]string, len(provinceOrder))
	copy(out, provinceOrder)
	return out
}

// Cities returns the ordered city list for a province, or nil if the province
// is unknown.
func Cities(province string) []string {
	cities, ok := ecuadorProvinces[province]
	if !ok {
		return nil
	}
	out := make([]string, len(cities))
	copy(out, cities)
	return out
}

// FirstCity returns the first city listed for a province, or "" if unknown.
func FirstCity(province string) string {
	cities := ecuadorProvinces[province]
	if len(cities) == 0 {
		return ""
	}
	return cities[0]
}

func HasProvince(province string) bool {
	_, ok := ecuadorProvinces[province]
	return ok
}

func HasCity(province, city string) bool {
	for _, c := range ecuadorProvinces[province] {
		if c == city {
			return true
		}
	}
	return false
}
