package user

// Client-facing messages. The service speaks Russian to its users.
const (
	MsgMissingFields = "Необходимо указать имя и email"
	MsgInvalidName   = "Имя должно содержать только буквы, пробелы и дефисы (от 2 до 50 символов)"
	MsgInvalidEmail  = "Введите корректный Email адрес"
	MsgDuplicate     = "Пользователь с таким email уже существует"
	MsgNotFound      = "Пользователь не найден"

	MsgCreated = "Пользователь добавлен успешно!"
	MsgUpdated = "Пользователь обновлен успешно!"
	MsgDeleted = "Пользователь удален успешно!"
)
