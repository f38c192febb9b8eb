package seed

import (
	"bytes"
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
)

//go:embed fixtures/*.yaml
var fixtureFS embed.FS

// Kind conjunto de datos a sembrar.
type Kind string

const (
	Production Kind = "production"
	Test       Kind = "test"
)

// Fixture contenido de un archivo de siembra.
type Fixture struct {
	Laboratories []LabFixture   `yaml:"laboratories"`
	Users        []UserFixture  `yaml:"users"`
	Orders       []OrderFixture `yaml:"orders"`
}

type LabFixture struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	Phone   string `yaml:"phone"`
	Email   string `yaml:"email"`
}

// UserFixture Lab referencia al laboratorio por nombre.
type UserFixture struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Phone    string `yaml:"phone"`
	Role     string `yaml:"role"`
	Lab      string `yaml:"lab"`
}

// OrderFixture Doctor referencia al doctor por email; el laboratorio es el del doctor.
type OrderFixture struct {
	Doctor         string            `yaml:"doctor"`
	Status         string            `yaml:"status"`
	Value          string            `yaml:"value"`
	Services       []string          `yaml:"services"`
	Odontograma    entity.Odontogram `yaml:"odontograma"`
	NombrePaciente string            `yaml:"nombre_paciente"`
	Observaciones  string            `yaml:"observaciones"`
	Instrucciones  string            `yaml:"instrucciones"`
	ColorSustrato  string            `yaml:"color_sustrato"`
	ColorTrabajo   string            `yaml:"color_trabajo"`
	Material       string            `yaml:"material"`
	Progress       string            `yaml:"progress"`
}

// LoadFixture lee el archivo embebido del tipo indicado.
func LoadFixture(kind Kind) (*Fixture, error) {
	data, err := fixtureFS.ReadFile("fixtures/" + string(kind) + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("seed: fixture %q: %w", kind, err)
	}
	return ParseFixture(data)
}

// ParseFixture decodifica YAML en modo estricto (campos desconocidos fallan).
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("seed: parse fixture: %w", err)
	}
	return &f, nil
}
