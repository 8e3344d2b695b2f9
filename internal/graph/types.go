package graph

// Model описывает сущность графа в конфигурации
type Model struct {
	Name        string                `yaml:"-"` // logical name of the model
	Table       string                `yaml:"table"`
	Relations   map[string]*Relation  `yaml:"relations"`
	PrimaryKeys []string              `yaml:"primary_keys"` // optional, e.g. ["id"]
}

// Relation описывает связь между моделями в конфигурации
type Relation struct {
	Type  string `yaml:"type"`  // has_one, has_many, belongs_to
	Model string `yaml:"model"` // название связанной модели (логическое)
	FK    string `yaml:"fk"`    // внешний ключ (обычно fk к текущей модели)
	PK    string `yaml:"pk"`    // if not "id", primary key in the current model
	Where string `yaml:"where"` // SQL-условие (без WHERE)

	// для runtime (не сериализуется)
	_ModelRef *Model `yaml:"-"`
}

// Карта алиасов: путь связей ↔ алиас таблицы в SQL.
// Путь задаётся относительно корневой модели (например: "supplier",
// "supplier.address"); неизменяема после построения.
type AliasMap struct {
	PathToAlias map[string]string
	AliasToPath map[string]string
}

// JoinSpec — один LEFT JOIN в собираемом запросе.
type JoinSpec struct {
	Table    string
	Alias    string
	On       string
	JoinType string // "LEFT JOIN"
	Distinct bool   // to-many связь размножает строки
	Where    string
	Fetch    bool // join добавлен подсказкой жадной загрузки, не фильтром
}

// GetPrimaryKeys возвращает список полей первичного ключа для модели.
// Если не задано в конфиге, по умолчанию возвращает ["id"].
func (m *Model) GetPrimaryKeys() []string {
	if len(m.PrimaryKeys) > 0 {
		return m.PrimaryKeys
	}
	return []string{"id"}
}

// GetModelRef возвращает ссылку на связанную модель, если она уже слинкована
func (r *Relation) GetModelRef() *Model {
	return r._ModelRef
}

// SetModelRef устанавливает ссылку на модель (вызывается из Registry после загрузки)
func (r *Relation) SetModelRef(model *Model) {
	r._ModelRef = model
}

// GetRelation возвращает связь по имени; nil, если связи нет.
func (m *Model) GetRelation(name string) *Relation {
	if m == nil || m.Relations == nil {
		return nil
	}
	return m.Relations[name]
}
