package content

import "time"

const (
	DefaultTipoCocina     = "Típica Boyacense"
	DefaultUbicacion      = "Centro"
	DefaultPrecioPromedio = 25000
)

type Restaurante struct {
	ID             string        `json:"id"`
	Nombre         string        `json:"nombre"`
	TipoCocina     string        `json:"tipo_cocina"`
	Aforo          int           `json:"aforo"`
	Especialidad   string        `json:"especialidad"`
	Propietario    string        `json:"propietario"`
	Direccion      string        `json:"direccion"`
	Ubicacion      string        `json:"ubicacion"`
	Telefono       string        `json:"telefono"`
	Whatsapp       string        `json:"whatsapp"`
	Correo         string        `json:"correo"`
	Horario        string        `json:"horario"`
	PrecioPromedio int           `json:"precio_promedio"`
	RedesSociales  RedesSociales `json:"redes_sociales"`
	Imagen         string        `json:"imagen"`
	Activo         bool          `json:"activo"`
	Creado         string        `json:"creado"`
	Actualizado    string        `json:"actualizado,omitempty"`
	Extra          Extra         `json:"-"`
}

type restauranteJSON Restaurante

func (r *Restaurante) UnmarshalJSON(b []byte) error {
	return decodeWithExtra(b, (*restauranteJSON)(r), &r.Extra)
}

func (r Restaurante) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(restauranteJSON(r), r.Extra)
}

func (r Restaurante) RecordID() string  { return r.ID }
func (r Restaurante) IsActive() bool    { return r.Activo }
func (r Restaurante) CreatedAt() string { return r.Creado }
func (r Restaurante) Files() []string   { return filesOf(r.Imagen) }
func (r Restaurante) SearchText() []string {
	return []string{r.Nombre, r.TipoCocina, r.Especialidad, r.Ubicacion}
}
func (r Restaurante) Category() string { return r.TipoCocina }

type RestaurantePatch struct {
	Nombre         *string
	TipoCocina     *string
	Aforo          *int
	Especialidad   *string
	Propietario    *string
	Direccion      *string
	Ubicacion      *string
	Telefono       *string
	Whatsapp       *string
	Correo         *string
	Horario        *string
	PrecioPromedio *int
	Redes          RedesPatch
	Imagen         *string
	Activo         *bool
}

func ParseRestaurantePatch(f Fields) RestaurantePatch {
	return RestaurantePatch{
		Nombre:         optFilled(f, "nombre"),
		TipoCocina:     optString(f, "tipo_cocina"),
		Aforo:          optInt(f, "aforo"),
		Especialidad:   optString(f, "especialidad"),
		Propietario:    optString(f, "propietario"),
		Direccion:      optString(f, "direccion"),
		Ubicacion:      optString(f, "ubicacion"),
		Telefono:       optString(f, "telefono"),
		Whatsapp:       optString(f, "whatsapp"),
		Correo:         optString(f, "correo"),
		Horario:        optString(f, "horario"),
		PrecioPromedio: optInt(f, "precio_promedio"),
		Redes:          ParseRedesPatch(f),
		Activo:         optBool(f, "activo"),
	}
}

func NewRestaurante(id string, p RestaurantePatch, now time.Time) Restaurante {
	r := Restaurante{
		ID:             id,
		PrecioPromedio: DefaultPrecioPromedio,
		Activo:         true,
		Creado:         Timestamp(now),
	}.merge(p)
	r.TipoCocina = orDefault(r.TipoCocina, DefaultTipoCocina)
	r.Ubicacion = orDefault(r.Ubicacion, DefaultUbicacion)
	return r
}

// Apply merges p over r. Fields p leaves nil keep their previous value.
func (r Restaurante) Apply(p RestaurantePatch, now time.Time) Restaurante {
	r = r.merge(p)
	r.Actualizado = Timestamp(now)
	return r
}

func (r Restaurante) merge(p RestaurantePatch) Restaurante {
	setString(&r.Nombre, p.Nombre)
	setString(&r.TipoCocina, p.TipoCocina)
	setInt(&r.Aforo, p.Aforo)
	setString(&r.Especialidad, p.Especialidad)
	setString(&r.Propietario, p.Propietario)
	setString(&r.Direccion, p.Direccion)
	setString(&r.Ubicacion, p.Ubicacion)
	setString(&r.Telefono, p.Telefono)
	setString(&r.Whatsapp, p.Whatsapp)
	setString(&r.Correo, p.Correo)
	setString(&r.Horario, p.Horario)
	setInt(&r.PrecioPromedio, p.PrecioPromedio)
	r.RedesSociales = r.RedesSociales.Apply(p.Redes)
	setString(&r.Imagen, p.Imagen)
	setBool(&r.Activo, p.Activo)
	return r
}
